package domain

import (
	"sort"
	"time"
)

// AgentKind names one of the per-file analysis agents offered by the backend.
type AgentKind string

const (
	AgentBugFinder AgentKind = "bugFinder"
	AgentReviewer  AgentKind = "reviewer"
	AgentDocgen    AgentKind = "docgen"
)

// AgentStatus is the outcome recorded on an AgentResult.
type AgentStatus string

const (
	StatusSuccess AgentStatus = "success"
	// StatusError is part of the result shape but the gateway reports
	// failures as AgentError instead of producing it.
	StatusError AgentStatus = "error"
)

// agentMeta holds per-kind display and routing data (extend via map, not switch).
var agentMeta = map[AgentKind]struct {
	Label       string
	Title       string
	Endpoint    string
	Description string
}{
	AgentBugFinder: {"Bug Finder", "Bug Finder Results", "/debug", "Scan for potential bugs and issues"},
	AgentReviewer:  {"Code Reviewer", "Code Review Results", "/review", "Get detailed code review and suggestions"},
	AgentDocgen:    {"Doc Generator", "Documentation Suggestions", "/docgen", "Generate comprehensive documentation"},
}

// AgentKinds lists the agents in display order.
func AgentKinds() []AgentKind {
	return []AgentKind{AgentBugFinder, AgentReviewer, AgentDocgen}
}

// Valid reports whether k is a known agent.
func (k AgentKind) Valid() bool {
	_, ok := agentMeta[k]
	return ok
}

// Label returns the human name of the agent.
func (k AgentKind) Label() string {
	if m, ok := agentMeta[k]; ok {
		return m.Label
	}
	return string(k)
}

// Title returns the heading used for results of this agent.
func (k AgentKind) Title() string {
	return agentMeta[k].Title
}

// Endpoint returns the backend path serving this agent.
func (k AgentKind) Endpoint() string {
	return agentMeta[k].Endpoint
}

// Description returns a one-line summary of what the agent does.
func (k AgentKind) Description() string {
	return agentMeta[k].Description
}

// AgentResult is the output of one agent run against one file.
type AgentResult struct {
	Kind       AgentKind   `json:"type"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Status     AgentStatus `json:"status"`
	ProducedAt time.Time   `json:"timestamp"`
	FilePath   string      `json:"filePath"`
}

// AgentResults is the collection of results gathered during one session.
type AgentResults []AgentResult

// Latest returns the newest result for the given file and agent.
func (rs AgentResults) Latest(filePath string, kind AgentKind) (AgentResult, bool) {
	var matches AgentResults
	for _, r := range rs {
		if r.FilePath == filePath && r.Kind == kind {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return AgentResult{}, false
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ProducedAt.After(matches[j].ProducedAt)
	})
	return matches[0], true
}
