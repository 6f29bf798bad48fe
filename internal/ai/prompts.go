package ai

import "fmt"

// DefaultSystemPrompt seeds new settings.
const DefaultSystemPrompt = "You are an AI assistant that helps generate questions and answers for FAQ datasets. Be clear, concise, and helpful."

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func questionMessages(req Request) []message {
	return []message{
		{
			Role: "system",
			Content: fmt.Sprintf("%s Generate a clear, concise question that fits the intent: %s. The question should be practical and commonly asked.",
				req.SystemPrompt, req.Intent),
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Generate a question with the intent: %s", req.Intent),
		},
	}
}

func answerMessages(req Request) []message {
	return []message{
		{
			Role: "system",
			Content: fmt.Sprintf("%s Provide a clear, accurate, and helpful answer to the question. The intent is: %s.",
				req.SystemPrompt, req.Intent),
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Question: %s\nIntent: %s\n\nProvide a helpful answer:", req.Question, req.Intent),
		},
	}
}
