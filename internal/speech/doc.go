// Package speech sequences spoken utterances over a pluggable Engine. At most
// one utterance is audible at a time, a new request always supersedes the
// previous one, and two-part chains continue only when the first part
// finishes on its own.
package speech
