// Package livellm renders streamed, token-by-token LLM text into a live
// terminal UI, detecting embedded component blocks (fenced with the
// livellm: info-string prefix) inside otherwise free-form prose and
// replacing them with live widgets as soon as their closing fence arrives.
//
// The core is the Session state machine: fully synchronous, character at
// a time, with no assumptions about chunk boundaries. Transport adapters
// in the transport package bridge byte streams, SSE channels and message
// sockets onto the Push/End/Abort surface; built-in widgets live in the
// widget package; markdown rendering in the markdown package.
package livellm
