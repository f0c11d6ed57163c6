package svg

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

const validIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="currentColor"><path d="M12 2a10 10 0 1 0 0 20"/></svg>`

func messages(r Result) []string {
	out := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		out[i] = is.Message
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{
			name:   "valid icon",
			markup: validIcon,
		},
		{
			name:   "xml declaration and comments are allowed",
			markup: `<?xml version="1.0"?><!-- logo --><svg viewBox="0 0 32 32" fill="currentColor"></svg>`,
		},
		{
			name:   "fractional and signed viewBox",
			markup: `<svg viewBox="-0.5 +0 24.5 2.45e1" fill="currentColor"/>`,
			want:   []string{MsgSquare},
		},
		{
			name:   "comma separated viewBox",
			markup: `<svg viewBox="0,0,16,16" fill="currentColor"/>`,
			want:   []string{MsgViewBox},
		},
		{
			name:   "infinite viewBox",
			markup: `<svg viewBox="0 0 Inf Inf" fill="currentColor"/>`,
			want:   []string{MsgViewBox},
		},
		{
			name:   "NaN viewBox",
			markup: `<svg viewBox="0 0 NaN NaN" fill="currentColor"/>`,
			want:   []string{MsgViewBox},
		},
		{
			name:   "hex viewBox",
			markup: `<svg viewBox="0 0 0x1p4 0x1p4" fill="currentColor"/>`,
			want:   []string{MsgViewBox},
		},
		{
			name:   "non-square viewBox",
			markup: `<svg viewBox="0 0 24 20" fill="currentColor"/>`,
			want:   []string{MsgSquare},
		},
		{
			name:   "width attribute",
			markup: `<svg viewBox="0 0 24 24" width="24" fill="currentColor"/>`,
			want:   []string{MsgWidthHeight},
		},
		{
			name:   "width and height give one error",
			markup: `<svg viewBox="0 0 24 24" width="24" height="24" fill="currentColor"/>`,
			want:   []string{MsgWidthHeight},
		},
		{
			name:   "missing fill",
			markup: `<svg viewBox="0 0 24 24"/>`,
			want:   []string{MsgFillCurrentClr},
		},
		{
			name:   "wrong fill",
			markup: `<svg viewBox="0 0 24 24" fill="#000"/>`,
			want:   []string{MsgFillCurrentClr},
		},
		{
			name:   "missing viewBox",
			markup: `<svg fill="currentColor"/>`,
			want:   []string{MsgViewBox},
		},
		{
			name:   "short viewBox",
			markup: `<svg viewBox="0 0 24" fill="currentColor"/>`,
			want:   []string{MsgViewBox},
		},
		{
			name:   "non-numeric viewBox",
			markup: `<svg viewBox="0 0 a a" fill="currentColor"/>`,
			want:   []string{MsgViewBox},
		},
		{
			name:   "every check fails",
			markup: `<svg viewBox="0 0 24 12" width="24" fill="red"/>`,
			want:   []string{MsgSquare, MsgWidthHeight, MsgFillCurrentClr},
		},
		{
			name:   "wrong root",
			markup: `<g viewBox="0 0 24 24" fill="currentColor"/>`,
			want:   []string{MsgInvalid},
		},
		{
			name:   "malformed markup",
			markup: `<svg viewBox="0 0 24 24" fill="currentColor"><path></svg>`,
			want:   []string{MsgInvalid},
		},
		{
			name:   "unterminated root",
			markup: `<svg viewBox="0 0 24 24" fill="currentColor">`,
			want:   []string{MsgInvalid},
		},
		{
			name:   "empty markup",
			markup: "",
			want:   []string{MsgInvalid},
		},
		{
			name:   "plain text",
			markup: "not an icon",
			want:   []string{MsgInvalid},
		},
		{
			name:   "two roots",
			markup: `<svg viewBox="0 0 24 24" fill="currentColor"/><svg/>`,
			want:   []string{MsgInvalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.markup, "icon")
			if len(tt.want) == 0 {
				assert.True(t, res.OK(), "unexpected issues: %v", res.Issues)
				return
			}
			assert.Equal(t, tt.want, messages(res))
			for _, is := range res.Issues {
				assert.Equal(t, "icon", is.RecordID)
			}
		})
	}
}

func TestValidateMessages(t *testing.T) {
	assert.Contains(t, MsgSquare, "square")
	assert.Contains(t, MsgWidthHeight, "width")
	assert.Contains(t, MsgWidthHeight, "height")
	assert.Contains(t, MsgFillCurrentClr, "fill")
}

func TestValidateAll(t *testing.T) {
	record := func(id, icon string) services.Service {
		return services.Service{ID: id, Name: id, Rules: []string{}, IconSVG: icon, Group: "cdn"}
	}

	t.Run("all valid", func(t *testing.T) {
		assert.NoError(t, ValidateAll([]services.Service{record("a", validIcon), record("b", validIcon)}))
		assert.NoError(t, ValidateAll(nil))
	})

	t.Run("errors are aggregated across records", func(t *testing.T) {
		records := []services.Service{
			record("square", `<svg viewBox="0 0 24 20" fill="currentColor"/>`),
			record("ok", validIcon),
			record("fill", `<svg viewBox="0 0 24 24"/>`),
			record("broken", `<svg`),
		}

		err := ValidateAll(records)
		require.Error(t, err)

		var svgErr *errors.SvgValidationError
		require.True(t, stderrors.As(err, &svgErr))
		assert.Equal(t, []string{"square", "fill", "broken"}, svgErr.RecordIDs())
		assert.Equal(t, []errors.Issue{
			{RecordID: "square", Message: MsgSquare},
			{RecordID: "fill", Message: MsgFillCurrentClr},
			{RecordID: "broken", Message: MsgInvalid},
		}, svgErr.Issues)
		assert.True(t, errors.IsValidationError(err))
	})
}
