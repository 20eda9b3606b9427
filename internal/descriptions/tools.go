package descriptions

// Tool descriptions shown to MCP clients

const (
	PDFTabOrderDescription = `List the form fields of a PDF in the order a viewer tabs through them.

**When to use:** Checking or documenting keyboard navigation of a fillable form, or finding fields whose position puts them out of the expected sequence.

**How it works:** Every widget annotation with a rectangle is collected. Fields are ranked top to bottom by the vertical center of their rectangle, then left to right by the horizontal center. Fields without a /T name are reported as "Unknown".

**Parameters:**
• path: PDF file, absolute or relative to the server directory
• engine: qpdf (default), pdfcpu, ledongthuc or auto
• format: text (default), json or yaml

**Examples:**
• "Show the tab order of forms/w2.pdf"
• "Give me the fields of application.pdf as JSON"

**Best practices:** Use pdf_validate_file first when unsure whether the file exists. Use engine=pdfcpu when qpdf is not installed on the server.`

	PDFValidateFileDescription = `Check that a path names a readable, non-empty file inside the server directory.

**When to use:** Before pdf_tab_order, to get a clear message instead of an extraction failure.`

	PDFEnginesDescription = `List the extraction engines and what each one reports.

**When to use:** Choosing an engine: qpdf needs the external qpdf binary and reports object numbers, pdfcpu runs in process and reports object numbers, ledongthuc runs in process and reports page numbers.`
)
