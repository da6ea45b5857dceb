// Package models lists the OpenAI models available to an API key, grouped
// into the speech models the flashcard can talk with and the chat models
// that write phonetic explanations.
package models
