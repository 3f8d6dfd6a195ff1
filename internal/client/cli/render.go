package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/client/session"
)

const timeLayout = "2006-01-02 15:04:05"

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cells ...any) {
	s := make([]string, len(cells))
	for i, c := range cells {
		s[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(s, "\t"))
}

func renderUsers(w io.Writer, list []*models.User) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	tw := newTable(w, "ID", "SURNAME", "NAME", "LOGIN", "ROLE", "STATUS")
	for _, u := range list {
		row(tw, u.ID, u.Surname, u.Name, u.Login, u.Role, u.Status)
	}
	_ = tw.Flush()
}

func renderStats(w io.Writer, list []services.UserStats) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	tw := newTable(w, "LOGIN", "STATUS", "LOGINS", "LOGOUTS", "LAST LOGIN", "LAST LOGOUT", "DURATION", "ONLINE")
	for _, st := range list {
		row(tw, st.Login, st.Status, st.LoginCount, st.LogoutCount,
			formatTime(st.LoginTime), formatTime(st.LogoutTime), formatDuration(st), yesNo(st.Online))
	}
	_ = tw.Flush()
}

func renderUserStats(w io.Writer, st services.UserStats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "Login:", st.Login)
	row(tw, "Name:", strings.TrimSpace(st.Name+" "+st.Surname))
	row(tw, "Role:", st.Role)
	row(tw, "Status:", st.Status)
	row(tw, "Logins:", st.LoginCount)
	row(tw, "Logouts:", st.LogoutCount)
	row(tw, "Last login:", formatTime(st.LoginTime))
	row(tw, "Last logout:", formatTime(st.LogoutTime))
	row(tw, "Session:", formatDuration(st))
	row(tw, "Online:", yesNo(st.Online))
	_ = tw.Flush()
}

func renderSummary(w io.Writer, s services.Summary) {
	fmt.Fprintf(w, "Users: %d (active %d, inactive %d; admins %d, standard %d)\n",
		s.Total, s.Active, s.Inactive, s.Admins, s.Standard)
	fmt.Fprintf(w, "Logins in total: %d, online now: %d\n", s.TotalLogins, s.Online)
}

func renderEvents(w io.Writer, list []models.SessionEvent) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No events recorded.")
		return
	}

	tw := newTable(w, "TIME", "LOGIN", "EVENT")
	for _, e := range list {
		row(tw, e.At.Format(timeLayout), e.Login, e.Kind)
	}
	_ = tw.Flush()
}

func renderOrders(w io.Writer, list []models.Order, fields []string) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No orders yet.")
		return
	}

	header := append([]string{"CREATED", "ID"}, upper(fields)...)
	tw := newTable(w, header...)
	for _, o := range list {
		cells := []any{o.CreatedAt.Format(timeLayout), o.ID}
		for _, f := range fields {
			cells = append(cells, o.Values[f])
		}
		row(tw, cells...)
	}
	_ = tw.Flush()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(timeLayout)
}

func formatDuration(st services.UserStats) string {
	if !st.HasSession {
		return "never logged in"
	}
	return session.FormatDuration(st.Duration)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}
