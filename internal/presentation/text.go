// Package presentation renders operation results as human-readable
// text. It sits outside the core contract: only the underlying data
// fields matter, the formatting here is free to change.
package presentation

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/glpipe/glpipe/internal/application"
	"github.com/glpipe/glpipe/internal/domain"
)

func StatusEmoji(s domain.Status) string {
	switch s {
	case domain.StatusSuccess:
		return "✅"
	case domain.StatusFailed:
		return "❌"
	case domain.StatusRunning:
		return "▶️"
	case domain.StatusPending:
		return "⏳"
	case domain.StatusCanceled:
		return "⛔"
	case domain.StatusSkipped:
		return "⏭️"
	case domain.StatusManual:
		return "🔧"
	default:
		return "ℹ️"
	}
}

// Result renders an operation envelope. Failures render as a single
// error line; empty successes render the message alone.
func Result(res application.Result) string {
	if !res.Success {
		return "Error: " + res.Message
	}
	if res.Data == nil {
		return res.Message
	}

	switch v := res.Data.(type) {
	case domain.ProjectIdentity:
		return Identity(v)
	case domain.Pipeline:
		return Pipeline(v)
	case domain.PipelineDetails:
		return PipelineDetails(v)
	case domain.Job:
		return JobDetails(v)
	case []domain.Artifact:
		return Artifacts(v)
	case domain.JobArtifactsDownload:
		return JobDownload(v)
	case domain.DownloadSummary:
		return DownloadSummary(v)
	default:
		return res.Message
	}
}

func Identity(id domain.ProjectIdentity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", id.FullPath())
	fmt.Fprintf(&b, "Host: %s\n", id.Host)
	fmt.Fprintf(&b, "Namespace: %s\n", id.Namespace)
	fmt.Fprintf(&b, "URL: %s\n", id.WebURL())
	return b.String()
}

func Pipeline(p domain.Pipeline) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Pipeline #%d: %s\n", StatusEmoji(p.Status), p.ID, p.Status)
	fmt.Fprintf(&b, "Ref: %s @ %s\n", p.Ref, shortSHA(p.SHA))
	if p.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", p.Source)
	}
	if p.User.Username != "" {
		fmt.Fprintf(&b, "Triggered by: %s\n", p.User.Username)
	}
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Created: %s\n", p.CreatedAt.Local().Format(time.RFC1123))
	}
	if p.Duration > 0 {
		fmt.Fprintf(&b, "Duration: %s\n", durationText(p.Duration))
	}
	if p.Coverage != "" {
		fmt.Fprintf(&b, "Coverage: %s%%\n", p.Coverage)
	}
	if p.YAMLErrors != "" {
		fmt.Fprintf(&b, "YAML errors: %s\n", p.YAMLErrors)
	}
	if p.WebURL != "" {
		fmt.Fprintf(&b, "URL: %s\n", p.WebURL)
	}
	return b.String()
}

func PipelineDetails(d domain.PipelineDetails) string {
	var b strings.Builder
	b.WriteString(Pipeline(d.Pipeline))

	if len(d.Jobs) > 0 {
		b.WriteString("\nJobs:\n")
		w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tSTAGE\tNAME\tSTATUS\tDURATION\tARTIFACTS")
		for _, j := range d.Jobs {
			arts := "-"
			if j.HasArtifacts() {
				arts = humanize.Bytes(uint64(j.ArtifactsFile.Size))
			}
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s %s\t%s\t%s\n",
				j.ID, j.Stage, j.Name, StatusEmoji(j.Status), j.Status, durationText(j.Duration), arts)
		}
		_ = w.Flush()
	}

	if len(d.Artifacts) > 0 {
		b.WriteString("\nArtifacts:\n")
		b.WriteString(artifactLines(d.Artifacts))
	}

	for _, j := range d.Jobs {
		if j.Trace == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- trace: %s (job %d) ---\n%s", j.Name, j.ID, j.Trace)
		if !strings.HasSuffix(j.Trace, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func JobDetails(j domain.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Job #%d: %s (%s)\n", StatusEmoji(j.Status), j.ID, j.Name, j.Status)
	fmt.Fprintf(&b, "Stage: %s\n", j.Stage)
	if len(j.TagList) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(j.TagList, ", "))
	}
	if j.AllowFailure {
		b.WriteString("Allowed to fail\n")
	}
	if j.Duration > 0 {
		fmt.Fprintf(&b, "Duration: %s (queued %s)\n", durationText(j.Duration), durationText(j.QueuedDuration))
	}
	if j.StartedAt != nil {
		fmt.Fprintf(&b, "Started: %s\n", j.StartedAt.Local().Format(time.RFC1123))
	}
	if j.FinishedAt != nil {
		fmt.Fprintf(&b, "Finished: %s\n", j.FinishedAt.Local().Format(time.RFC1123))
	}
	if j.Coverage > 0 {
		fmt.Fprintf(&b, "Coverage: %.1f%%\n", j.Coverage)
	}
	if j.HasArtifacts() {
		fmt.Fprintf(&b, "Artifacts: %s (%s)\n", j.ArtifactsFile.Filename, humanize.Bytes(uint64(j.ArtifactsFile.Size)))
	}
	if j.WebURL != "" {
		fmt.Fprintf(&b, "URL: %s\n", j.WebURL)
	}
	if j.Trace != "" {
		fmt.Fprintf(&b, "\n--- trace ---\n%s", j.Trace)
		if !strings.HasSuffix(j.Trace, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func Artifacts(arts []domain.Artifact) string {
	if len(arts) == 0 {
		return "No artifacts.\n"
	}
	return "Artifacts:\n" + artifactLines(arts)
}

func artifactLines(arts []domain.Artifact) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  JOB\tFILE\tTYPE\tSIZE")
	for _, a := range arts {
		fmt.Fprintf(w, "  %s (%d)\t%s\t%s\t%s\n",
			a.JobName, a.JobID, a.Filename, a.FileType, humanize.Bytes(uint64(a.Size)))
	}
	_ = w.Flush()
	return b.String()
}

func JobDownload(d domain.JobArtifactsDownload) string {
	if len(d.Files) == 0 {
		return fmt.Sprintf("Job #%d %q has no artifacts to download.\n", d.JobID, d.JobName)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Downloaded artifacts for job #%d %q:\n", d.JobID, d.JobName)
	for _, f := range d.Files {
		fmt.Fprintf(&b, "  %s (%s)\n", f.Path, humanize.Bytes(uint64(f.Size)))
	}
	return b.String()
}

func DownloadSummary(s domain.DownloadSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pipeline #%d artifact downloads: %d attempted, %d succeeded, %d failed\n",
		s.PipelineID, s.Attempted, s.Succeeded, s.Failed)
	for _, o := range s.Outcomes {
		if o.Success {
			fmt.Fprintf(&b, "  ✅ %s (job %d): %s (%s)\n", o.JobName, o.JobID, o.Path, humanize.Bytes(uint64(o.Size)))
		} else {
			fmt.Fprintf(&b, "  ❌ %s (job %d): %s\n", o.JobName, o.JobID, o.Error)
		}
	}
	return b.String()
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func durationText(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	return time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
}
