// Package descriptions holds the long-form descriptions shown to MCP clients
// for each tool.
package descriptions

import "sort"

// Tool names
const (
	ToolOutlineFile      = "pdf_outline_file"
	ToolOutlineDirectory = "pdf_outline_directory"
	ToolValidateFile     = "pdf_validate_file"
	ToolSearchDirectory  = "pdf_search_directory"
)

const (
	PDFOutlineFileDescription = `Infer the title and heading outline (H1, H2, H3, ...) of a PDF document from its layout.

**When to use:** Need the structure of a document: a table of contents, section boundaries, or a navigation tree.

**How it works:** Headings are found from font size, weight, numbering and position relative to the body text. Page headers, footers, table cells and watermarks are ignored. The embedded PDF outline is not used.

**Examples:**
• Build a table of contents: "Outline annual-report.pdf as markdown"
• Split a manual into sections: "Get the H1 headings of manual.pdf with their pages"

**Output formats:** json (default: {"title", "outline": [{"level", "text", "page"}]}), md (nested list), html.

**Best practices:** Pages are 1-based. The title never appears in the outline. Scanned documents without a text layer return the title "No text found in document" and an empty outline.`

	PDFOutlineDirectoryDescription = `Infer the outline of every PDF file directly inside a directory.

**When to use:** Survey a folder of reports or papers, or compare the structure of several documents.

**Examples:**
• "Outline all PDFs in /docs/papers"
• "Which of the contracts in this folder have a Termination section?"

**Best practices:** Documents that cannot be opened are listed with an error title instead of failing the whole call. Subdirectories are not visited.`

	PDFValidateFileDescription = `Verify that a file is a readable PDF before outlining it.

**When to use:** Before processing user uploads or files of unknown origin.

**Examples:**
• "Check that contract.pdf opens and report its page count"

**Best practices:** Reports the page count when valid and the reason when not (missing, empty, too large, not a PDF, unreadable).`

	PDFSearchDirectoryDescription = `Find PDF files in a directory tree, optionally filtered by a fuzzy name query.

**When to use:** Locate documents to outline when the exact file name is unknown.

**Examples:**
• "Find PDFs with 'invoice' in the name"
• "List every PDF under the default directory"

**Best practices:** Leave the directory empty to search the configured default directory. Hidden directories are skipped.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	ToolOutlineFile:      PDFOutlineFileDescription,
	ToolOutlineDirectory: PDFOutlineDirectoryDescription,
	ToolValidateFile:     PDFValidateFileDescription,
	ToolSearchDirectory:  PDFSearchDirectoryDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the sorted names of all described tools
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
