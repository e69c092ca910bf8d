// Package suggestions is a placeholder writing assistant: it returns canned
// suggestions chosen by keywords in the prompt after a simulated delay.
package suggestions

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay simulates the latency of a real text generation backend.
const DefaultDelay = 1500 * time.Millisecond

// Kind identifies which canned set answered a prompt.
type Kind string

// Suggestion sets, checked in this order.
const (
	KindJobDescription     Kind = "job_description"
	KindProjectDescription Kind = "project_description"
	KindSummary            Kind = "summary"
	KindGeneric            Kind = "generic"
)

var canned = map[Kind][]string{
	KindJobDescription: {
		"Developed and maintained web applications using React, improving performance by 40%.",
		"Led a team of 5 developers to successfully deliver projects on time and under budget.",
		"Implemented CI/CD pipelines resulting in 60% faster deployment times.",
	},
	KindProjectDescription: {
		"Created a responsive e-commerce platform with React and Node.js, increasing mobile conversions by 25%.",
		"Developed a dashboard analytics tool that visualized key metrics for executive decision making.",
		"Built a customer management system that automated workflows and reduced manual tasks by 30%.",
	},
	KindSummary: {
		"Results-driven software engineer with 5+ years of experience in full-stack development specializing in React and Node.js.",
		"Creative problem solver with a track record of delivering robust, scalable applications in fast-paced environments.",
		"Passionate developer focused on creating intuitive user experiences while maintaining clean, efficient code.",
	},
	KindGeneric: {
		"Designed and implemented comprehensive testing strategies to ensure code quality.",
		"Collaborated with cross-functional teams to deliver features aligned with business requirements.",
		"Optimized database queries resulting in 50% faster application response times.",
	},
}

// Classify picks the suggestion set for a prompt. Matching is case sensitive,
// the first matching keyword wins.
func Classify(prompt string) Kind {
	switch {
	case strings.Contains(prompt, "job description"):
		return KindJobDescription
	case strings.Contains(prompt, "project description"):
		return KindProjectDescription
	case strings.Contains(prompt, "summary"):
		return KindSummary
	default:
		return KindGeneric
	}
}

// Generator returns canned suggestions.
type Generator struct {
	delay  time.Duration
	logger *zap.Logger
}

// NewGenerator creates a generator that waits delay before answering. A zero delay answers immediately.
func NewGenerator(delay time.Duration, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{delay: delay, logger: logger}
}

// Suggest returns three suggestions for prompt. It returns ctx.Err() if ctx
// ends during the simulated delay.
func (g *Generator) Suggest(ctx context.Context, prompt string) ([]string, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	kind := Classify(prompt)
	g.logger.Debug("generated suggestions", zap.String("kind", string(kind)))
	return append([]string(nil), canned[kind]...), nil
}
