// Package agent implements a small configurable assistant with a memory and
// an optional self reflection loop.
//
// The agent keeps a system prompt built from its role and instructions as
// the first message of its memory:
//
//	You're an AI Agent, your role is {role}, and you need to {instructions}
//
// Invoke answers once. Reflect answers, asks the model to critique its own
// answer and answers again, up to three times:
//
//	a := agent.Must(agent.Role("Travel Assistant"), agent.Temperature(0.7))
//	final, err := a.Reflect(ctx, "Where can I go on holiday in December?", 2)
//	critique, err := agent.ParseCritique(final)
package agent
