// Package domain translates MCP tool calls into trial service requests.
//
// Each tool maps one protocol message onto one TrialService call and returns
// a structured result that agents can read back: case state, the round
// outcome, and the verdicts recorded so far.
package domain
