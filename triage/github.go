/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-github/v84/github"

	"github.com/nova-labs/automation/githubops"
)

// maxLogRedirects bounds how many redirects are followed when resolving the
// job-log download URL. The Actions API answers with a short-lived signed
// URL into blob storage.
const maxLogRedirects = 3

// actionsClient implements GitHub over go-github for one repository.
type actionsClient struct {
	gh    *github.Client
	owner string
	repo  string
}

// NewGitHub adapts a go-github client to the pipeline's GitHub interface.
func NewGitHub(gh *github.Client, res githubops.Resource) GitHub {
	return &actionsClient{gh: gh, owner: res.Owner, repo: res.Repo}
}

func (c *actionsClient) GetRun(ctx context.Context, runID int64) (RunReference, error) {
	run, _, err := c.gh.Actions.GetWorkflowRunByID(ctx, c.owner, c.repo, runID)
	if err != nil {
		return RunReference{}, fmt.Errorf("fetching run %d: %w", runID, err)
	}
	return RunReference{
		ID:      run.GetID(),
		Name:    run.GetName(),
		HeadSHA: run.GetHeadSHA(),
	}, nil
}

func (c *actionsClient) ListJobs(ctx context.Context, runID int64) ([]JobRecord, error) {
	opts := &github.ListWorkflowJobsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var records []JobRecord
	for {
		jobs, resp, err := c.gh.Actions.ListWorkflowJobs(ctx, c.owner, c.repo, runID, opts)
		if err != nil {
			return nil, err
		}
		for _, job := range jobs.Jobs {
			records = append(records, JobRecord{
				ID:          job.GetID(),
				Name:        job.GetName(),
				Conclusion:  job.GetConclusion(),
				StartedAt:   job.GetStartedAt().Time,
				CompletedAt: job.GetCompletedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return records, nil
}

func (c *actionsClient) JobLog(ctx context.Context, jobID int64) (string, error) {
	logURL, _, err := c.gh.Actions.GetWorkflowJobLogs(ctx, c.owner, c.repo, jobID, maxLogRedirects)
	if err != nil {
		return "", fmt.Errorf("resolving log URL for job %d: %w", jobID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logURL.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.gh.Client().Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading logs for job %d: %w", jobID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading logs for job %d: status %d", jobID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading logs for job %d: %w", jobID, err)
	}
	return string(body), nil
}

func (c *actionsClient) CommentOnPullRequest(ctx context.Context, number int, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	return err
}

func (c *actionsClient) CommentOnCommit(ctx context.Context, sha string, body string) error {
	_, _, err := c.gh.Repositories.CreateComment(ctx, c.owner, c.repo, sha, &github.RepositoryComment{
		Body: github.Ptr(body),
	})
	return err
}
