// Package flashcard is the navigation controller of the alphabet flashcard.
// It turns classified gestures, key presses and toolbar commands into deck
// mutations and speech requests, keeps the current letter inside the
// addressable space and publishes a render snapshot for the GUI.
package flashcard
