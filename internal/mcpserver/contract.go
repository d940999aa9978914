package mcpserver

// DocFormatContract describes the source guide format the converter accepts
// and the dialect it writes.
const DocFormatContract = `# Feather Docs Format Contract

## Source guides

Source guides are flat ` + "`" + `*.md` + "`" + ` files with a frontmatter block:

` + "```" + `markdown
---
category: "faq"                 # REQUIRED – one of the slugs below
nav_title: "Fees (explained)"   # REQUIRED – sidebar entry
title: Fee FAQ                  # REQUIRED – page heading
---
Body text in Markdown.
` + "```" + `

Frontmatter is read line by line as ` + "`" + `key: value` + "`" + `; values are trimmed of
spaces and double quotes. Nested YAML is not supported.

Guides with a missing key or an unknown category are skipped silently.

## Categories

| slug | label |
|------|-------|
| getting-started | 1. Getting started |
| howto | 2. How to |
| faq | 3. Faq |
| advanced | 4. Advanced |
| troubleshooting | 5. Troubleshooting |
| help | 6. Help |

## Generated dialect

` + "```" + `markdown
[nav_title]: # (Fees \(explained\))
[category]: # (3. Faq)

## Fee FAQ
Body text in Markdown.
` + "```" + `

The first two lines are link reference definitions: renderers hide them,
the wallet reads them. Parentheses in nav_title are backslash-escaped.
Every run deletes all ` + "`" + `*.md` + "`" + ` files in the output directory first.
`
