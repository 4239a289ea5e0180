package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

const authoredDocument = `{
	"desert": {
		"defaultMaterials": [{"archive": 302, "record": 3, "frame": 0}],
		"winterMaterials": []
	},
	"woodlands": {
		"defaultMaterials": [{"archive": 302, "record": 1, "frame": 0}, {"archive": 302, "record": 2, "frame": 0}],
		"winterMaterials": [{"archive": 303, "record": 1, "frame": 0}]
	},
	"swamp": {
		"defaultMaterials": null
	}
}`

func TestJSONParser_Parse_AuthoredDocument(t *testing.T) {
	parser := &JSONParser{}
	doc, err := parser.Parse(strings.NewReader(authoredDocument))
	require.NoError(t, err)
	require.Len(t, doc, 3)

	assert.Equal(t, []entities.ResourceRef{entities.Ref(302, 3, 0)}, doc["desert"].DefaultRefs)
	assert.Empty(t, doc["desert"].WinterRefs)
	assert.Len(t, doc["woodlands"].DefaultRefs, 2)
	assert.Equal(t, []entities.ResourceRef{entities.Ref(303, 1, 0)}, doc["woodlands"].WinterRefs)
	assert.True(t, doc["swamp"].IsEmpty())
}

func TestJSONParser_Parse_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax error", `{"desert": {`},
		{"wrong field type", `{"desert": {"defaultMaterials": [{"archive": "302"}]}}`},
		{"array instead of object", `[]`},
		{"null document", `null`},
		{"empty input", ``},
		{"trailing garbage", `{"desert": {}} garbage`},
		{"second document", `{"desert": {}} {"swamp": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			_, err := parser.Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestYAMLParser_Parse(t *testing.T) {
	input := `
mountain:
  defaultMaterials:
    - {archive: 400, record: 1, frame: 0}
  winterMaterials:
    - {archive: 401, record: 1, frame: 0}
mountainBalfiera:
  defaultMaterials:
    - {archive: 410, record: 0, frame: 2}
`
	parser := &YAMLParser{}
	doc, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []entities.ResourceRef{entities.Ref(400, 1, 0)}, doc["mountain"].DefaultRefs)
	assert.Equal(t, []entities.ResourceRef{entities.Ref(401, 1, 0)}, doc["mountain"].WinterRefs)
	assert.Equal(t, []entities.ResourceRef{entities.Ref(410, 0, 2)}, doc["mountainBalfiera"].DefaultRefs)
}

func TestYAMLParser_Parse_Empty(t *testing.T) {
	parser := &YAMLParser{}
	_, err := parser.Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		expected DocumentParser
	}{
		{"rock.json", &JSONParser{}},
		{"ROCK.JSON", &JSONParser{}},
		{"rock.yaml", &YAMLParser{}},
		{"rock.yml", &YAMLParser{}},
		{"rock.txt", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForFile(tt.filename))
		})
	}
}

func TestCSVParser_ParseCatalog(t *testing.T) {
	input := "archive,record,frame,location\n302,1,0,textures/302_1-0.png\n 302, 2, 0, textures/302_2-0.png\n"

	parser := &CSVParser{}
	rows, err := parser.ParseCatalog(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, RawHandle{Archive: 302, Record: 1, Frame: 0, Location: "textures/302_1-0.png", LineNum: 2}, rows[0])
	assert.Equal(t, 2, rows[1].Record)
	assert.Equal(t, 3, rows[1].LineNum)
}

func TestCSVParser_ParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"missing column", "archive,record,location\n1,2,x\n", "missing required column: frame"},
		{"bad number", "archive,record,frame,location\n1,two,0,x\n", "line 2: invalid record value"},
		{"no header", "", "reading CSV header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &CSVParser{}
			_, err := parser.ParseCatalog(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJSONParser_ParseCatalog(t *testing.T) {
	input := `[{"archive": 504, "record": 19, "frame": 0, "location": "crops/504_19"}]`

	parser := &JSONParser{}
	rows, err := parser.ParseCatalog(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "crops/504_19", rows[0].Location)
	assert.Equal(t, 1, rows[0].LineNum)
}

func TestJSONParser_Parse_TrailingWhitespace(t *testing.T) {
	parser := &JSONParser{}
	doc, err := parser.Parse(strings.NewReader("{\"desert\": {}}\n\n"))
	require.NoError(t, err)
	assert.Len(t, doc, 1)
}

const regionDocument = `{
	"regions": [
		{
			"regionName": "Daggerfall",
			"defaultMaterials": [{"archive": 140, "record": 0, "frame": 0}],
			"winterMaterials": [{"archive": 141, "record": 0, "frame": 0}]
		},
		{
			"regionName": "Sentinel",
			"defaultMaterials": [{"archive": 302, "record": 4, "frame": 1}]
		}
	]
}`

func TestJSONParser_RegionDocument(t *testing.T) {
	parser := &JSONParser{}

	assert.True(t, parser.IsRegionDocument([]byte(regionDocument)))
	assert.False(t, parser.IsRegionDocument([]byte(authoredDocument)))
	assert.False(t, parser.IsRegionDocument([]byte(`[]`)))

	regions, err := parser.ParseRegions(strings.NewReader(regionDocument))
	require.NoError(t, err)
	require.Len(t, regions, 2)

	assert.Equal(t, "Daggerfall", regions[0].RegionName)
	assert.Equal(t, []entities.ResourceRef{entities.Ref(140, 0, 0)}, regions[0].DefaultRefs)
	assert.Equal(t, []entities.ResourceRef{entities.Ref(141, 0, 0)}, regions[0].WinterRefs)
	assert.Equal(t, []entities.ResourceRef{entities.Ref(302, 4, 1)}, regions[1].DefaultRefs)
	assert.Empty(t, regions[1].WinterRefs)
}

func TestJSONParser_ParseRegions_Invalid(t *testing.T) {
	parser := &JSONParser{}

	_, err := parser.ParseRegions(strings.NewReader(`{"regions": {}}`))
	assert.Error(t, err)

	_, err = parser.ParseRegions(strings.NewReader(`{"regions": []} trailing`))
	assert.Error(t, err)
}

func TestYAMLParser_RegionDocument(t *testing.T) {
	input := `
regions:
  - regionName: Wayrest
    defaultMaterials:
      - {archive: 150, record: 2, frame: 0}
`
	parser := &YAMLParser{}
	require.True(t, parser.IsRegionDocument([]byte(input)))
	assert.False(t, parser.IsRegionDocument([]byte("mountain:\n  defaultMaterials: []\n")))

	regions, err := parser.ParseRegions(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Wayrest", regions[0].RegionName)
	assert.Equal(t, []entities.ResourceRef{entities.Ref(150, 2, 0)}, regions[0].DefaultRefs)
}
