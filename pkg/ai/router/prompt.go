package router

import (
	"ai-assistant-be/pkg/llm"
)

// MaxHistoryMessages bounds the conversation history sent to the model.
// Older entries are dropped silently; rejecting over-long inbound history is
// the HTTP boundary's job, not ours.
const MaxHistoryMessages = 20

const systemPrompt = "You are Michael, an operations assistant that manages a knowledge base of documents " +
	"and can read files from the project directory to help answer questions.\n\n" +
	"Always introduce yourself as Michael and include the phrase 'How can I assist you today?' when you " +
	"greet the user directly.\n\n" +
	"Follow these rules:\n" +
	"1. Only respond with a valid JSON object containing the keys `action`, `arguments`, and `response_template`.\n" +
	"2. Choose one of the actions: `list_documents`, `create_document`, `read_document`, `update_document`, " +
	"`delete_document`, `read_file`, or `respond`.\n" +
	"3. `arguments` must be a JSON object with the parameters required for the action.\n" +
	"4. Use the `respond` action when you can answer the user directly without calling the database or filesystem.\n" +
	"5. Never attempt to read files outside of the configured project directory.\n"

// BuildMessages assembles the outbound prompt: the fixed system instruction,
// at most the last MaxHistoryMessages history entries, then the new message.
func BuildMessages(userMessage string, history []llm.Message) []llm.Message {
	if len(history) > MaxHistoryMessages {
		history = history[len(history)-MaxHistoryMessages:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: userMessage})
	return messages
}
