// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/skyquery/internal/httputil"
	"github.com/pdiddy/skyquery/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

// withBase points a provider base URL at a test server for one test.
func withBase(t *testing.T, base *string, url string) {
	t.Helper()
	old := *base
	*base = url
	t.Cleanup(func() { *base = old })
}

func testClient(ts *httptest.Server) ClientConfig {
	return ClientConfig{HTTPClient: ts.Client(), UserAgent: "skyquery-test/0.1", MaxRetries: 1}
}

const sampleSesame = `# M31	#Q2188561
#=S=Simbad (via url):    1
%@ 1575544
%I.0 M  31
%C.0 G
%J 10.68470833 +41.26875000 = 00:42:44.33 +41:16:07.5
%J.E [3.40 2.50 90] A 2006AJ....131.1163S
%M.V 3.44 [~] D ~
%I NAME Andromeda Galaxy
%I NGC 224
#=N=NED:    1
%I.0 MESSIER 031
%J 10.6847929 +41.2690650 = 00:42:44.35 +41:16:08.6
#====Done (2024-Mar-01,12:00:00z)====
`

func TestSesameSearchByName(t *testing.T) {
	var gotQuery, gotAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery, _ = url.QueryUnescape(r.URL.RawQuery)
		gotAgent = r.Header.Get("User-Agent")
		io.WriteString(w, sampleSesame)
	}))
	defer ts.Close()
	withBase(t, &sesameBase, ts.URL)

	recs, err := NewSesame(testClient(ts)).SearchByName(context.Background(), "  Andromeda   Galaxy ", ProviderOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "Andromeda Galaxy", gotQuery)
	assert.Equal(t, "skyquery-test/0.1", gotAgent)

	r := recs[0]
	assert.Equal(t, "M 31", r.Name)
	assert.Equal(t, "M 31", r.CanonicalID)
	assert.Equal(t, "Galaxy", r.Type)
	assert.Equal(t, types.CategoryDSO, r.Category)
	assert.Equal(t, types.SourceNameResolver, r.Source)
	assert.InDelta(t, 10.68470833, *r.RA, 1e-9)
	assert.InDelta(t, 41.26875, *r.Dec, 1e-9)
	assert.InDelta(t, 3.44, *r.Magnitude, 1e-9)
	assert.Equal(t, []string{"Andromeda Galaxy", "NGC 224"}, r.Identifiers, "NED block ignored")
}

func TestSesameSkipsBlocksWithoutPosition(t *testing.T) {
	body := `# Barnard's Star
#=S=Simbad (via url):    1
%I.0 BD+04  3561a
%C.0 PM*
%I GJ 699
#=V=VizieR (local):    1
%I.0 V* V2500 Oph
%J 269.45207696 +04.69336497 = 17:57:48.49 +04:41:36.1
%I NAME Barnard's Star
#====Done====
`
	rec, ok := parseSesame([]byte(body))
	require.True(t, ok)
	assert.Equal(t, "V* V2500 Oph", rec.Name)
	assert.Empty(t, rec.Type, "type from the discarded block is dropped")
	assert.Equal(t, []string{"Barnard's Star"}, rec.Identifiers)
	assert.InDelta(t, 269.45207696, *rec.RA, 1e-9)

	// A name with no position in any block is not a match.
	_, ok = parseSesame([]byte("#=S=Simbad:    1\n%I.0 X\n#=N=NED:    1\n%C.0 G\n#====Done====\n"))
	assert.False(t, ok)
}

func TestSesameNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "# nosuchthing\n#! *** Nothing found *** \n#====Done====\n")
	}))
	defer ts.Close()
	withBase(t, &sesameBase, ts.URL)

	recs, err := NewSesame(testClient(ts)).SearchByName(context.Background(), "nosuchthing", ProviderOptions{})
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = NewSesame(testClient(ts)).SearchByCoordinates(context.Background(), ConeQuery{}, ProviderOptions{})
	assert.NoError(t, err)
	assert.Nil(t, recs)
}

const sampleSimbad = `{
  "metadata": [
    {"name": "main_id"}, {"name": "ra"}, {"name": "dec"}, {"name": "otype"},
    {"name": "V"}, {"name": "galdim_majaxis"}, {"name": "galdim_minaxis"}
  ],
  "data": [
    ["M  31", 10.684708333333333, 41.268750000000004, "AGN", 3.44, 199.53, 70.79],
    ["NAME Andromeda's Satellite", 10.6743, 40.8652, "GiG", null, null, null]
  ]
}`

func TestSimbadSearch(t *testing.T) {
	var gotForm url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, sampleSimbad)
	}))
	defer ts.Close()
	withBase(t, &simbadTAPBase, ts.URL)

	s := NewSimbad(testClient(ts))
	recs, err := s.SearchByName(context.Background(), "Andromeda's Galaxy", ProviderOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "doQuery", gotForm.Get("REQUEST"))
	assert.Equal(t, "json", gotForm.Get("FORMAT"))
	assert.Contains(t, gotForm.Get("QUERY"), "SELECT TOP 5")
	assert.Contains(t, gotForm.Get("QUERY"), "ident.id = 'Andromeda''s Galaxy'")

	assert.Equal(t, "M 31", recs[0].Name)
	assert.Equal(t, "Active Galaxy Nucleus", recs[0].Type)
	assert.Equal(t, types.CategoryDSO, recs[0].Category)
	assert.Equal(t, "199.53x70.79 arcmin", recs[0].Size)
	assert.InDelta(t, 3.44, *recs[0].Magnitude, 1e-9)
	assert.Nil(t, recs[1].Magnitude)
	assert.Empty(t, recs[1].Size)

	_, err = s.SearchByCoordinates(context.Background(), ConeQuery{RA: 10.68, Dec: 41.27, RadiusDeg: 0.5}, ProviderOptions{})
	require.NoError(t, err)
	q := gotForm.Get("QUERY")
	assert.Contains(t, q, "SELECT TOP 20")
	assert.Contains(t, q, "CIRCLE('ICRS', 10.68000000, 41.27000000, 0.50000000)")
}

func TestSimbadHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()
	withBase(t, &simbadTAPBase, ts.URL)

	_, err := NewSimbad(testClient(ts)).SearchByName(context.Background(), "M31", ProviderOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestVizierCone(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("QUERY")
		io.WriteString(w, `{"metadata":[{"name":"HIP"},{"name":"RArad"},{"name":"DErad"},{"name":"Hpmag"}],
			"data":[[3293, 10.47, 41.13, 8.9],[null, 1, 2, 3]]}`)
	}))
	defer ts.Close()
	withBase(t, &vizierTAPBase, ts.URL)

	v := NewVizier(testClient(ts), "")
	recs, err := v.SearchByCoordinates(context.Background(), ConeQuery{RA: 10.5, Dec: 41.1, RadiusDeg: 0.2}, ProviderOptions{Limit: 3})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Contains(t, gotQuery, `FROM "I/311/hip2"`)
	assert.Contains(t, gotQuery, "TOP 3")
	assert.Equal(t, "HIP 3293", recs[0].Name)
	assert.Equal(t, types.SourceLargeCatalog, recs[0].Source)
	assert.Equal(t, types.CategoryStar, recs[0].Category)

	recs, err = v.SearchByName(context.Background(), "HIP 3293", ProviderOptions{})
	assert.NoError(t, err)
	assert.Nil(t, recs)
}

func TestMPCSearchByName(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantName string
		wantCat  types.ObjectCategory
		wantIDs  []string
	}{
		{
			name:     "numbered asteroid",
			reply:    `{"found":1,"object_type":["Minor planet",0],"permid":"433","name":"Eros","unpacked_primary_provisional_designation":"A898 PA","packed_primary_provisional_designation":"A898P00A"}`,
			wantName: "(433) Eros",
			wantCat:  types.CategoryAsteroid,
			wantIDs:  []string{"Eros", "A898 PA", "A898P00A"},
		},
		{
			name:     "provisional packs locally",
			reply:    `{"found":1,"object_type":["Minor planet",0],"unpacked_primary_provisional_designation":"2007 TA418"}`,
			wantName: "2007 TA418",
			wantCat:  types.CategoryAsteroid,
			wantIDs:  []string{"K07Tf8A"},
		},
		{
			name:     "comet",
			reply:    `{"found":1,"object_type":["Comet",10],"permid":"1P","name":"Halley"}`,
			wantName: "1P/Halley",
			wantCat:  types.CategoryComet,
			wantIDs:  []string{"Halley"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBody string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				gotBody = string(b)
				io.WriteString(w, tt.reply)
			}))
			defer ts.Close()
			withBase(t, &mpcIdentifierBase, ts.URL)

			recs, err := NewMPC(testClient(ts)).SearchByName(context.Background(), "2007  TA418", ProviderOptions{})
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, "2007 TA418", gotBody)
			assert.Equal(t, tt.wantName, recs[0].Name)
			assert.Equal(t, tt.wantCat, recs[0].Category)
			assert.Equal(t, tt.wantIDs, recs[0].Identifiers)
			assert.Equal(t, types.SourceMinorPlanetCenter, recs[0].Source)
			assert.Nil(t, recs[0].RA)
		})
	}
}

func TestMPCNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"found":0}`)
	}))
	defer ts.Close()
	withBase(t, &mpcIdentifierBase, ts.URL)

	recs, err := NewMPC(testClient(ts)).SearchByName(context.Background(), "M31", ProviderOptions{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestProviderRetriesRateLimit(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, sampleSesame)
	}))
	defer ts.Close()
	withBase(t, &sesameBase, ts.URL)

	recs, err := NewSesame(testClient(ts)).SearchByName(context.Background(), "M31", ProviderOptions{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, 2, calls)
}

func TestProviderHonoursCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, sampleSesame)
	}))
	defer ts.Close()
	withBase(t, &sesameBase, ts.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSesame(testClient(ts)).SearchByName(ctx, "M31", ProviderOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCategorize(t *testing.T) {
	tests := map[string]types.ObjectCategory{
		"GlC":                     types.CategoryDSO,
		"V*":                      types.CategoryStar,
		"MPl":                     types.CategoryAsteroid,
		"Globular Cluster":        types.CategoryDSO,
		"Planetary Nebula":        types.CategoryDSO,
		"Dwarf Planet":            types.CategoryPlanet,
		"Near-Earth Asteroid":     types.CategoryAsteroid,
		"Long-period comet":       types.CategoryComet,
		"Red Giant Star":          types.CategoryStar,
		"Y*O":                     types.CategoryStar,
		"Fast Radio Burst Source": types.CategoryOther,
		"":                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Categorize(in), "Categorize(%q)", in)
	}
	assert.Equal(t, "Globular Cluster", TypeLabel("GlC"))
	assert.Equal(t, "Xyz", TypeLabel(" Xyz "))
}

func TestFilterMinor(t *testing.T) {
	recs := []types.ProviderRecord{
		{Name: "Ceres", Category: types.CategoryAsteroid},
		{Name: "Halley", Type: "Comet"},
		{Name: "M31", Type: "Galaxy"},
	}
	kept := FilterMinor(recs, false)
	require.Len(t, kept, 1)
	assert.Equal(t, "M31", kept[0].Name)
	assert.Len(t, FilterMinor(recs, true), 3)
}

func TestToResultItem(t *testing.T) {
	rec := types.ProviderRecord{
		Name:        "M 31",
		Identifiers: []string{"NGC 224", "M31", "  Andromeda   Galaxy "},
		Type:        "Galaxy",
		RA:          types.Float(10.68),
		Dec:         types.Float(41.27),
		Source:      types.SourceObjectDatabase,
	}
	it := ToResultItem(rec)
	assert.Equal(t, "object_database:M 31", it.ID)
	assert.Equal(t, "M 31", it.CanonicalID)
	assert.Equal(t, "NGC 224, Andromeda Galaxy", it.AlternateNames)
	assert.Equal(t, types.CategoryDSO, it.Category)
	assert.True(t, it.HasCoordinates())

	bare := ToResultItem(types.ProviderRecord{Name: "x"})
	assert.Equal(t, types.SourceUnknown, bare.Source)
	assert.Equal(t, "unknown:X", bare.ID)
	assert.True(t, strings.HasPrefix(bare.ID, "unknown:"))
}
