package script

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

// errStepFailed marks a command-level step failure inside the
// transaction body. It triggers rollback but is reported through the
// RunResult, not as a runner error.
var errStepFailed = errors.New("script: step failed")

// Load parses and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script: parse %s: %w", path, err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("script: %s has no steps", path)
	}
	for i, step := range s.Steps {
		if step.Cmd == "" {
			return nil, fmt.Errorf("script: %s step %d has no cmd", path, i)
		}
	}
	if s.Name == "" {
		s.Name = path
	}
	return &s, nil
}

// Run executes the script against the client. Step failures roll the
// transaction back and are reported in the result; the returned error is
// reserved for transport and protocol failures.
func Run(ctx context.Context, client *forge.Client, s *Script) (*RunResult, error) {
	run := &RunResult{Name: s.Name}

	label := s.Transaction
	if label == "" {
		label = s.Name
	}

	err := client.WithTransaction(ctx, label, func(c *forge.Client) error {
		for i, step := range s.Steps {
			res, err := c.Execute(ctx, step.Cmd, step.Args)
			if err != nil {
				run.Steps = append(run.Steps, StepResult{Index: i, Cmd: step.Cmd, Error: err.Error()})
				run.Failed++
				return err
			}

			sr := StepResult{Index: i, Cmd: step.Cmd, OK: res.OK, Error: res.Err}
			run.Steps = append(run.Steps, sr)
			if !res.OK {
				run.Failed++
				return fmt.Errorf("%w: step %d (%s): %s", errStepFailed, i, step.Cmd, res.Err)
			}
			run.Passed++
		}
		return nil
	})
	if err != nil {
		run.RolledBack = true
		if errors.Is(err, errStepFailed) {
			return run, nil
		}
		return run, err
	}

	if s.VerifyMask != 0 {
		report, err := client.RunVerification(ctx, forge.PhaseMask(s.VerifyMask))
		if err != nil {
			return run, err
		}
		run.Report = &report
		if !report.AllPassed {
			return run, nil
		}
	}

	if s.Save {
		res, err := client.SaveCurrentLevel(ctx)
		if err != nil {
			return run, err
		}
		run.Saved = res.OK
	}
	return run, nil
}

// LoadAndRun loads a script file and executes it.
func LoadAndRun(ctx context.Context, client *forge.Client, path string) (*RunResult, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Run(ctx, client, s)
}
