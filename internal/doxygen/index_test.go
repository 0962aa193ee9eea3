package doxygen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for index.xml extraction:
// - Members of allowed files are collected per kind in document order
// - Member kinds other than function/typedef/enum/define are ignored
// - Files outside the allow-list contribute nothing
// - Struct compounds are collected regardless of any file membership
// - Duplicate names are preserved
// - Names are not trimmed or otherwise transformed
// - Excluded functions are still collected
// - Missing or empty <name> on a needed compound/member is a SchemaError
// - Missing <name> on an ignored member kind is tolerated
// - Malformed XML is a ParseError, a missing file is an IOError
// - Trailing content after the root, or a different root element, is a ParseError

const sampleIndex = `<?xml version='1.0' encoding='UTF-8' standalone='no'?>
<doxygenindex version="1.9.1">
  <compound refid="struct_o_b_version" kind="struct"><name>ob_version</name>
    <member refid="a1" kind="variable"><name>major</name></member>
  </compound>
  <compound refid="_context_8h" kind="file"><name>Context.h</name>
    <member refid="c1" kind="function"><name>ob_create_context</name></member>
    <member refid="c2" kind="function"><name>ob_delete_context</name></member>
    <member refid="c3" kind="define"><name>OB_CONTEXT_H</name></member>
  </compound>
  <compound refid="_internal_8h" kind="file"><name>Internal.h</name>
    <member refid="i1" kind="function"><name>ob_internal_secret</name></member>
  </compound>
  <compound refid="_ob_types_8h" kind="file"><name>ObTypes.h</name>
    <member refid="t1" kind="typedef"><name>ob_context</name></member>
    <member refid="t2" kind="enum"><name>OBStatus</name></member>
    <member refid="t3" kind="enumvalue"><name>OB_STATUS_OK</name></member>
    <member refid="t4" kind="typedef"><name>ob_status</name></member>
    <member refid="t5" kind="variable"><name>ob_global</name></member>
  </compound>
  <compound refid="_frame_8h" kind="file"><name>Frame.h</name>
    <member refid="f1" kind="function"><name>ob_frame_width</name></member>
    <member refid="f2" kind="function"><name>ob_frame_get_width</name></member>
  </compound>
  <compound refid="struct_o_b_point" kind="struct"><name>OBPoint</name></compound>
  <compound refid="dir_1" kind="dir"><name>include</name></compound>
  <compound refid="group_1" kind="group"><name>context</name></compound>
</doxygenindex>
`

func TestParseIndex_CollectsAllowedMembersInOrder(t *testing.T) {
	t.Parallel()

	symbols, err := ParseIndex(strings.NewReader(sampleIndex), AllowedFileSet())
	require.NoError(t, err)

	assert.Equal(t, SymbolList{"OB_CONTEXT_H"}, symbols.Macros)
	assert.Equal(t, SymbolList{"ob_version", "OBPoint"}, symbols.Structs)
	assert.Equal(t, SymbolList{"OBStatus"}, symbols.Enums)
	assert.Equal(t, SymbolList{"ob_context", "ob_status"}, symbols.Typedefs)
	assert.Equal(t, SymbolList{
		"ob_create_context",
		"ob_delete_context",
		"ob_frame_width",
		"ob_frame_get_width",
	}, symbols.Functions)
}

func TestParseIndex_FileOutsideAllowListContributesNothing(t *testing.T) {
	t.Parallel()

	input := `<doxygenindex>
  <compound kind="file"><name>NotInList.h</name>
    <member kind="function"><name>ob_hidden</name></member>
    <member kind="define"><name>OB_HIDDEN</name></member>
    <member kind="typedef"><name>ob_hidden_t</name></member>
    <member kind="enum"><name>OBHidden</name></member>
  </compound>
</doxygenindex>`

	symbols, err := ParseIndex(strings.NewReader(input), AllowedFileSet())
	require.NoError(t, err)
	assert.Equal(t, 0, symbols.Len())
}

func TestParseIndex_StructsAreNeverGated(t *testing.T) {
	t.Parallel()

	input := `<doxygenindex>
  <compound kind="struct"><name>ob_error</name></compound>
  <compound kind="file"><name>NotInList.h</name></compound>
  <compound kind="struct"><name>private_struct</name></compound>
</doxygenindex>`

	// Even an empty allow-list keeps structs.
	symbols, err := ParseIndex(strings.NewReader(input), NewNameSet())
	require.NoError(t, err)
	assert.Equal(t, SymbolList{"ob_error", "private_struct"}, symbols.Structs)
	assert.Empty(t, symbols.Functions)
}

func TestParseIndex_KeepsDuplicatesAndRawNames(t *testing.T) {
	t.Parallel()

	input := `<doxygenindex>
  <compound kind="file"><name>Device.h</name>
    <member kind="function"><name>ob_device_reboot</name></member>
    <member kind="function"><name>ob_device_reboot</name></member>
    <member kind="function"><name> spaced_name </name></member>
  </compound>
</doxygenindex>`

	symbols, err := ParseIndex(strings.NewReader(input), AllowedFileSet())
	require.NoError(t, err)
	assert.Equal(t, SymbolList{"ob_device_reboot", "ob_device_reboot", " spaced_name "}, symbols.Functions)
}

func TestParseIndex_MissingNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "file compound without name",
			input:   `<doxygenindex><compound kind="file"></compound></doxygenindex>`,
			wantErr: true,
		},
		{
			name:    "struct compound with empty name",
			input:   `<doxygenindex><compound kind="struct"><name></name></compound></doxygenindex>`,
			wantErr: true,
		},
		{
			name: "function member without name",
			input: `<doxygenindex><compound kind="file"><name>Sensor.h</name>
				<member kind="function"></member></compound></doxygenindex>`,
			wantErr: true,
		},
		{
			name: "ignored member kind without name",
			input: `<doxygenindex><compound kind="file"><name>Sensor.h</name>
				<member kind="variable"></member></compound></doxygenindex>`,
			wantErr: false,
		},
		{
			name: "member of disallowed file without name",
			input: `<doxygenindex><compound kind="file"><name>Other.h</name>
				<member kind="function"></member></compound></doxygenindex>`,
			wantErr: false,
		},
		{
			name:    "ignored compound kind without name",
			input:   `<doxygenindex><compound kind="page"></compound></doxygenindex>`,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseIndex(strings.NewReader(tt.input), AllowedFileSet())
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.ErrorIs(t, err, ErrMissingName)
		})
	}
}

func TestParseIndex_MalformedXML(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"<doxygenindex><compound kind=\"struct\">",
		"not xml at all <",
		// Trailing garbage after a complete root
		"<doxygenindex><compound kind=\"struct\"><name>ob_error</name></compound></doxygenindex><broken",
		// A stray element ahead of the real root
		"<a/><doxygenindex><compound kind=\"struct\"><name>x</name></compound></doxygenindex>",
		// A second root element
		"<doxygenindex/><doxygenindex/>",
	}
	for _, input := range inputs {
		_, err := ParseIndex(strings.NewReader(input), AllowedFileSet())
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "input %q", input)
	}
}

func TestCollectSymbols_MissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := CollectSymbols(dir)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, filepath.Join(dir, IndexFile), ioErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCollectSymbols_ReportsPathOnSchemaError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, IndexFile, `<doxygenindex><compound kind="struct"/></doxygenindex>`)

	_, err := CollectSymbols(dir)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, filepath.Join(dir, IndexFile), schemaErr.Path)
	assert.Contains(t, err.Error(), IndexFile)
}

// writeFile writes content to dir/name.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
