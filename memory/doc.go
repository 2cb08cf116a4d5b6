// Package memory keeps the conversation history sent to a chat model.
//
// A Memory is a plain ordered list of messages. Every request sends the whole
// list, which is how a stateless completion API is made to "remember" earlier
// turns: the user message is appended, the list is sent, and the reply is
// appended in turn.
//
// Fork and Join support work that must land in the history atomically. A tool
// round forks the memory, appends the assistant tool calls and the tool
// results to the fork, and joins it back only once every call has a result, so
// the history never holds tool calls without their answers.
//
// A Memory is not safe for concurrent use.
package memory
