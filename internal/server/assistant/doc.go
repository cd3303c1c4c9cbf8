// Package assistant answers free-form questions about the user's jobs,
// clients and calendar. Remote language models are tried in order and a
// keyword responder backed by the finance package answers when none of
// them does.
package assistant
