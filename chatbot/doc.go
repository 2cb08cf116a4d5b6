// Package chatbot implements a few-shot chatbot that keeps the whole
// conversation.
//
// The history starts with the persona instructions followed by the example
// exchanges, so the model answers in the same voice:
//
//	bot, err := chatbot.FromPersona(chatbot.MustPersona("BEEP-42"))
//	if err != nil {
//		return err
//	}
//	reply, err := bot.Invoke(ctx, "HAL, is that you?")
package chatbot
