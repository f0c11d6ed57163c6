package output

import (
	"errors"
	"strconv"

	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/hostlists/internal/cmd/emoji"
	"github.com/agentstation/hostlists/pkg/differ"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

// ServicesData lists services with their group and rule count.
func ServicesData(records []services.Service) Data {
	rows := make([][]string, 0, len(records))
	for _, s := range records {
		rows = append(rows, []string{s.ID, s.Name, s.Group, strconv.Itoa(len(s.Rules))})
	}
	return Data{
		Headers: []string{"ID", "Name", "Group", "Rules"},
		Rows:    rows,
		Align:   []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignLeft, tw.AlignRight},
	}
}

// ChangesData renders a changeset one row per field change.
func ChangesData(cs *differ.Changeset) Data {
	data := Data{Headers: []string{"", "ID", "Change"}}
	if cs == nil {
		return data
	}
	for _, s := range cs.Added {
		data.Rows = append(data.Rows, []string{emoji.Added, s.ID, "group: " + s.Group})
	}
	for _, u := range cs.Updated {
		for _, fc := range u.Changes {
			data.Rows = append(data.Rows, []string{emoji.Updated, u.ID, fc.String()})
		}
	}
	for _, s := range cs.Removed {
		data.Rows = append(data.Rows, []string{emoji.Removed, s.ID, "no source file"})
	}
	return data
}

// DriftData renders records missing from the source directory followed by
// the changes the source directory would bring.
func DriftData(missing []services.Service, cs *differ.Changeset) Data {
	data := Data{Headers: []string{"", "ID", "Change"}}
	for _, s := range missing {
		data.Rows = append(data.Rows, []string{emoji.Warning, s.ID, "source file missing, would be restored"})
	}
	changes := ChangesData(cs)
	// a missing record is also reported as removed by the changeset
	for _, row := range changes.Rows {
		if row[0] == emoji.Removed {
			continue
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// IssuesData flattens an aggregated pipeline error into one row per problem.
// Errors outside the aggregated taxonomy become a single row.
func IssuesData(err error) Data {
	data := Data{Headers: []string{"Kind", "Subject", "Problem"}}
	if err == nil {
		return data
	}
	add := func(kind, subject, problem string) {
		data.Rows = append(data.Rows, []string{kind, subject, problem})
	}

	var (
		files  *pkgerrors.SourceFilesError
		groups *pkgerrors.GroupValidationError
		icons  *pkgerrors.SvgValidationError
		locs   *pkgerrors.LocalizationError
		shape  *pkgerrors.InputShapeError
	)
	switch {
	case errors.As(err, &files):
		for _, f := range files.Files {
			add("source", f.File, f.Reason)
		}
	case errors.As(err, &groups):
		for _, o := range groups.Offenders {
			add("group", o.ID, groups.Reason+": "+strconv.Quote(o.Group))
		}
	case errors.As(err, &icons):
		for _, is := range icons.Issues {
			add("icon", is.RecordID, is.Message)
		}
	case errors.As(err, &locs):
		for _, is := range locs.Issues {
			add("locale", is.RecordID, is.Message)
		}
	case errors.As(err, &shape):
		add("shape", shape.Collection, shape.Error())
	default:
		add("error", "-", err.Error())
	}
	return data
}
