package rag

import "strings"

// answerTemplate frames the retrieved guidelines context and the user's
// question for the language model.
const answerTemplate = `You are an AI assistant for an Enterprise Systems Catalog. Use the following context from operational procedures and guidelines to answer questions about enterprise systems, stewardship, and operational procedures.

Context: {{context}}

Question: {{question}}

Provide helpful, detailed responses based on the context. If the context doesn't contain relevant information, use your knowledge of enterprise systems and best practices to provide guidance. Use bullet points and structured formatting when appropriate.`

// BuildPrompt renders the answer prompt from retrieved chunks and the
// user's question.
func BuildPrompt(contextDocs []string, question string) string {
	prompt := strings.ReplaceAll(answerTemplate, "{{context}}", FormatDocs(contextDocs))
	return strings.ReplaceAll(prompt, "{{question}}", question)
}
