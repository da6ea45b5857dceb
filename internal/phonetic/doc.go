// Package phonetic provides the spoken material for each letter: its name,
// its phonetic sound and an example word. It can also fetch a longer,
// child-friendly explanation of a letter's sound using OpenAI's GPT models.
package phonetic
