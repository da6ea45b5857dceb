// Package processor runs one invocation of speakabc. It builds the speech
// engine from the resolved settings and then either speaks a single letter
// from the command line or hands over to the flashcard GUI.
package processor
