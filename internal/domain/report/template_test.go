package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplate(t *testing.T) {
	tpl, err := NewTemplate(uuid.New(), "asset-register", "Asset register", EntityAssets, []Column{
		{Key: "tag", Title: "Tag"},
		{Key: " name "},
	})
	require.NoError(t, err)
	assert.Equal(t, "ASSET-REGISTER", tpl.Code)
	assert.Equal(t, FormatHTML, tpl.DefaultFormat)
	assert.Equal(t, Column{Key: "name", Title: "name"}, tpl.Columns[1])

	_, err = NewTemplate(uuid.New(), "X", "X", EntityAssets, nil)
	require.Error(t, err)

	_, err = NewTemplate(uuid.New(), "X", "X", EntityAssets, []Column{{Key: "a"}, {Key: "a"}})
	require.Error(t, err)
}

func TestTemplate_Update(t *testing.T) {
	tpl, _ := NewTemplate(uuid.New(), "R", "Report", EntityLeases, []Column{{Key: "id"}})

	err := tpl.Update("Report", "", []Column{{Key: "id"}}, "{{range .Rows}", FormatCSV)
	require.Error(t, err)

	require.NoError(t, tpl.Update("Report", "desc", []Column{{Key: "id"}}, "<p>{{len .Rows}}</p>", FormatPDF))
	assert.Equal(t, FormatPDF, tpl.DefaultFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())

	_, err = ParseFormat("xlsx", FormatHTML)
	require.Error(t, err)

	_, err = ParseEntity("users")
	require.Error(t, err)
}
