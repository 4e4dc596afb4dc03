// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"io"
	txttemplate "text/template"

	"github.com/quixsi/planner/internal/model"
)

var emailTemplate = txttemplate.Must(txttemplate.ParseFS(templates, "email.txt"))

// RenderEmail writes the availability inquiry for vendor to w.
func RenderEmail(w io.Writer, vendor *model.Vendor) error {
	return emailTemplate.Execute(w, vendor)
}
