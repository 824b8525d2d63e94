package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

// PlanNotifier sends a plan summary to the number given at intake.
type PlanNotifier struct {
	sender  Sender
	linkFmt string
}

// NewPlanNotifier creates a notifier. When linkBase is set, summaries end with
// a link to linkBase + "/plan/" + id.
func NewPlanNotifier(sender Sender, linkBase string) *PlanNotifier {
	linkFmt := ""
	if base := strings.TrimRight(strings.TrimSpace(linkBase), "/"); base != "" {
		linkFmt = base + "/plan/%s"
	}
	return &PlanNotifier{sender: sender, linkFmt: linkFmt}
}

// NotifyPlan sends the summary of p to the given number.
func (n *PlanNotifier) NotifyPlan(ctx context.Context, to string, p models.ActionPlan) error {
	link := ""
	if n.linkFmt != "" {
		link = fmt.Sprintf(n.linkFmt, p.ID)
	}
	if err := n.sender.SendMessage(ctx, to, FormatPlanSummary(p, link)); err != nil {
		return fmt.Errorf("failed to deliver plan %s: %w", p.ID, err)
	}
	slog.Info("PlanNotifier.NotifyPlan: plan delivered", "plan_id", p.ID)
	return nil
}

// FormatPlanSummary renders a short plain-text overview of a plan: the core
// technique, the first day's tasks and the plan id.
func FormatPlanSummary(p models.ActionPlan, link string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your NeuroSoma plan is ready: %s, %d %s to go.\n",
		p.UserContext.Goal, p.UserContext.DaysUntil, plural(p.UserContext.DaysUntil, "day", "days"))
	fmt.Fprintf(&b, "Core technique: %s (%d min). %s\n",
		p.MatchedTechnique.Title, p.MatchedTechnique.DurationMin, p.MatchedTechnique.Description)

	if len(p.Schedule) > 0 {
		first := p.Schedule[0]
		fmt.Fprintf(&b, "\n%s\n", first.Title)
		for _, task := range first.Tasks {
			fmt.Fprintf(&b, "- %s (%d min)\n", task.Description, task.DurationMin)
		}
	}

	fmt.Fprintf(&b, "\nPlan ID: %s", p.ID)
	if link != "" {
		fmt.Fprintf(&b, "\n%s", link)
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
