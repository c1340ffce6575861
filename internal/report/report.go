// Package report turns a finished check run into the notification body.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/repowatch/repowatch/internal/domain"
)

const header = `Hi team,

This email contains the status of the mirrored repositories: the
synchronization state against their upstreams and open issue/PR counts.
`

const footer = `
PS: This is an automated email, please do not reply!

---
Regards,
repowatch
`

const (
	syncSectionTitle   = "##### Repository Synchronization Status #####"
	statusSectionTitle = "##### Github Repository Status/Information #####"
)

// Aggregate concatenates the full result text of every task whose verdict
// belongs in the report, in input order, separated by exactly one blank
// line. Tasks with a PASS verdict contribute nothing.
func Aggregate(tasks []domain.CheckTask) string {
	var parts []string
	for _, task := range tasks {
		if task.Verdict().Reportable() {
			parts = append(parts, task.Result())
		}
	}
	return strings.Join(parts, "\n\n")
}

// Compose assembles the report body: header, the aggregated sync section,
// the aggregated status section, footer.
func Compose(syncTasks, statusTasks []domain.CheckTask) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(syncSectionTitle + "\n")
	b.WriteString(Aggregate(syncTasks))
	b.WriteString("\n\n")
	b.WriteString(statusSectionTitle + "\n")
	b.WriteString(Aggregate(statusTasks))
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

// Subject builds the notification subject line for a run on the given day.
func Subject(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = "[repowatch]"
	}
	return fmt.Sprintf("%s Repository Status - %s", prefix, now.Format("2006-01-02"))
}
