// Package resumekit turns uploaded resumes into text, safe markup and
// print-ready PDF documents. It extracts text from plain-text, .docx and
// PDF uploads, sanitizes a restricted markdown dialect for display,
// composes A4 PDF documents, and throttles repeated login failures.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, goldmark/, rod/).
package resumekit
