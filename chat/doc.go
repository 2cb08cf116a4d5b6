// Package chat holds the plain request/response helpers: a single system
// plus user call, a chat turn over a memory, and the tool calling loop.
//
// Every helper talks to a provider.Model, so the same code runs against
// OpenAI or a fake model in tests.
package chat
