package mcpserver

// LinkSyntaxReference describes the wikilink syntax that LLM consumers
// should use when reading or producing node content.
const LinkSyntaxReference = `# nous Wikilink Syntax

Nodes in a nous realm are plain-text files that reference each other with
inline wikilinks.

## Forms

` + "```" + `markdown
[[Target]]            link to the node named "Target"
[[Target|Alias Text]] link to "Target", displayed as "Alias Text"
[[Target#Heading]]    link to "Target"; the anchor is not part of the name
[[#Heading]]          internal reference, links to nothing
` + "```" + `

## Rules

1. **Names are case-insensitive** (ASCII folding): ` + "`" + `[[project]]` + "`" + ` and
   ` + "`" + `[[Project]]` + "`" + ` reach the same node.
2. **The target is a filename stem.** No extension, no directory — nodes
   are found anywhere under the realm regardless of subdirectory.
3. **Everything after ` + "`" + `|` + "`" + ` or ` + "`" + `#` + "`" + ` is dropped** when resolving the target.
4. **A lone ` + "`" + `]` + "`" + ` inside a link body is ordinary content**; only an adjacent
   ` + "`" + `]]` + "`" + ` pair closes the link.
5. **Unterminated links are ignored**, never an error.
`
