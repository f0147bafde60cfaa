package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quantmind-br/tiappxml/internal/xmldoc"
	"github.com/quantmind-br/tiappxml/tests/mocks"
	"github.com/quantmind-br/tiappxml/tests/testutil"
)

// notFoundFS returns a mock filesystem on which every path is missing
func notFoundFS(t *testing.T) *mocks.MockFileSystem {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)
	fsys.EXPECT().Stat(gomock.Any()).Return(nil, fs.ErrNotExist).AnyTimes()
	return fsys
}

func TestNew_ExplicitFile(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.WriteManifest(t, dir, "com.example.app")

	tiapp, err := New(WithFile(path))
	require.NoError(t, err)
	require.NotNil(t, tiapp)

	assert.Equal(t, path, tiapp.File())
	assert.True(t, tiapp.Loaded())
	assert.Equal(t, Loaded, tiapp.State())
	assert.Equal(t, "ti:app", tiapp.Doc().RootName())
}

func TestNew_FileNotFound(t *testing.T) {
	tiapp, err := New(WithFile("nonexistent/path.xml"))

	assert.Error(t, err)
	assert.Nil(t, tiapp)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "nonexistent/path.xml")
}

func TestNew_NonStringFileValue(t *testing.T) {
	// no expectations: any filesystem access fails the test
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)

	tests := []struct {
		name  string
		value any
	}{
		{"int", 42},
		{"bool", true},
		{"slice", []string{"tiapp.xml"}},
		{"map", map[string]any{"file": "tiapp.xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiapp, err := New(WithFileValue(tt.value), WithFileSystem(fsys))

			assert.Nil(t, tiapp)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), fmt.Sprintf("%T", tt.value))
		})
	}
}

func TestNew_StringFileValue(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.WriteManifest(t, dir, "com.example.value")

	tiapp, err := New(WithFileValue(path))
	require.NoError(t, err)
	assert.Equal(t, path, tiapp.File())
}

func TestNew_NilFileValueSearches(t *testing.T) {
	dir := testutil.TempDir(t)
	want := testutil.WriteManifest(t, dir, "com.example.app")
	start := testutil.EnsureDir(t, dir, "Resources")

	tiapp, err := New(WithFileValue(nil), WithStartDir(start))
	require.NoError(t, err)
	assert.Equal(t, want, tiapp.File())
}

func TestNew_DiscoversManifest(t *testing.T) {
	dir := testutil.TempDir(t)
	want := testutil.WriteManifest(t, dir, "com.example.found")
	start := testutil.EnsureDir(t, dir, "app", "controllers")

	tiapp, err := New(WithStartDir(start))
	require.NoError(t, err)
	require.NotNil(t, tiapp)

	assert.Equal(t, want, tiapp.File())
	s, err := tiapp.Summary()
	require.NoError(t, err)
	assert.Equal(t, "com.example.found", s.ID)
}

func TestNew_DiscoversFromWorkingDirectory(t *testing.T) {
	dir := testutil.TempDir(t)
	want := testutil.WriteManifest(t, dir, "com.example.cwd")
	testutil.Chdir(t, testutil.EnsureDir(t, dir, "i18n"))

	tiapp, err := New()
	require.NoError(t, err)
	assert.Equal(t, want, tiapp.File())
}

func TestNew_NothingFoundIsUnloaded(t *testing.T) {
	tiapp, err := New(WithFileSystem(notFoundFS(t)), WithStartDir(filepath.Join(string(filepath.Separator), "work", "app")))

	require.NoError(t, err)
	require.NotNil(t, tiapp)
	assert.False(t, tiapp.Loaded())
	assert.Empty(t, tiapp.File())
	assert.Nil(t, tiapp.Doc())
	assert.Equal(t, Unloaded, tiapp.State())
	assert.Empty(t, tiapp.String())
}

func TestNew_MalformedFile(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.WriteFile(t, dir, "tiapp.xml", "<ti:app><id>broken")

	tiapp, err := New(WithFile(path))

	assert.Nil(t, tiapp)
	assert.ErrorIs(t, err, ErrParse)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Path)
}

func TestTiapp_Load_SequentialFiles(t *testing.T) {
	base := testutil.TempDir(t)
	first := testutil.WriteManifest(t, testutil.EnsureDir(t, base, "first"), "com.example.first")
	second := testutil.WriteManifest(t, testutil.EnsureDir(t, base, "second"), "com.example.second")

	tiapp, err := New(WithFile(first))
	require.NoError(t, err)

	require.NoError(t, tiapp.Load(second))

	assert.Equal(t, second, tiapp.File())
	s, err := tiapp.Summary()
	require.NoError(t, err)
	assert.Equal(t, "com.example.second", s.ID)
	assert.Equal(t, second, s.File)
	assert.NotContains(t, tiapp.String(), "com.example.first")
}

func TestTiapp_Load_FailureKeepsState(t *testing.T) {
	dir := testutil.TempDir(t)
	good := testutil.WriteManifest(t, dir, "com.example.good")
	bad := testutil.WriteFile(t, dir, "broken.xml", "<not valid xml")
	empty := testutil.WriteFile(t, dir, "empty.xml", "")
	subdir := testutil.EnsureDir(t, dir, "tiapp-dir")

	tiapp, err := New(WithFile(good))
	require.NoError(t, err)
	doc := tiapp.Doc()

	tests := []struct {
		name    string
		file    string
		wantErr error
	}{
		{"missing file", filepath.Join(dir, "missing.xml"), ErrNotFound},
		{"directory", subdir, ErrNotFound},
		{"malformed xml", bad, ErrParse},
		{"empty file", empty, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tiapp.Load(tt.file)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, good, tiapp.File())
			assert.Same(t, doc, tiapp.Doc())
			assert.Equal(t, Loaded, tiapp.State())
		})
	}
}

func TestTiapp_Load_EmptySearches(t *testing.T) {
	dir := testutil.TempDir(t)

	tiapp, err := New(WithStartDir(dir))
	require.NoError(t, err)
	require.False(t, tiapp.Loaded())

	want := testutil.WriteManifest(t, dir, "com.example.late")

	require.NoError(t, tiapp.Load(""))
	assert.Equal(t, want, tiapp.File())
	assert.Equal(t, Loaded, tiapp.State())
}

func TestTiapp_Load_EmptyNothingFound(t *testing.T) {
	tiapp, err := New(WithFileSystem(notFoundFS(t)), WithStartDir(string(filepath.Separator)))
	require.NoError(t, err)

	err = tiapp.Load("")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Unloaded, tiapp.State())
}

func TestTiapp_Load_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)

	path := filepath.Join(string(filepath.Separator), "work", FileName)
	fsys.EXPECT().Stat(path).Return(testutil.FileInfo{FileName: FileName}, nil)
	fsys.EXPECT().ReadFile(path).Return(nil, fs.ErrPermission)

	tiapp, err := New(WithFile(path), WithFileSystem(fsys))

	assert.Nil(t, tiapp)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to read manifest file")
}

func TestTiapp_Load_VanishedFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)

	path := filepath.Join(string(filepath.Separator), "work", FileName)
	fsys.EXPECT().Stat(path).Return(testutil.FileInfo{FileName: FileName}, nil)
	fsys.EXPECT().ReadFile(path).Return(nil, fs.ErrNotExist)

	_, err := New(WithFile(path), WithFileSystem(fsys))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTiapp_Load_UTF16(t *testing.T) {
	dir := testutil.TempDir(t)
	// UTF-16LE with BOM
	src := testutil.ManifestXML("com.example.wide", "Wide")
	raw := []byte{0xFF, 0xFE}
	for _, r := range src {
		raw = append(raw, byte(r), byte(r>>8))
	}
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	tiapp, err := New(WithFile(path))
	require.NoError(t, err)

	s, err := tiapp.Summary()
	require.NoError(t, err)
	assert.Equal(t, "com.example.wide", s.ID)
}

func TestTiapp_Parse(t *testing.T) {
	t.Run("valid xml on unloaded handle", func(t *testing.T) {
		tiapp, err := New(WithFileSystem(notFoundFS(t)), WithStartDir(string(filepath.Separator)))
		require.NoError(t, err)

		require.NoError(t, tiapp.Parse(testutil.ManifestXML("com.example.parsed", "Parsed")))

		assert.True(t, tiapp.Loaded())
		assert.Empty(t, tiapp.File())
		assert.Equal(t, Parsed, tiapp.State())
	})

	t.Run("does not touch file", func(t *testing.T) {
		dir := testutil.TempDir(t)
		path := testutil.WriteManifest(t, dir, "com.example.app")
		tiapp, err := New(WithFile(path))
		require.NoError(t, err)

		require.NoError(t, tiapp.Parse(`<ti:app xmlns:ti="http://ti.appcelerator.org"><id>com.example.other</id></ti:app>`))

		assert.Equal(t, path, tiapp.File())
		assert.Equal(t, Parsed, tiapp.State())
		s, err := tiapp.Summary()
		require.NoError(t, err)
		assert.Equal(t, "com.example.other", s.ID)
		assert.Empty(t, s.File)

		require.NoError(t, tiapp.Load(path))
		assert.Equal(t, Loaded, tiapp.State())
		s, err = tiapp.Summary()
		require.NoError(t, err)
		assert.Equal(t, "com.example.app", s.ID)
		assert.Equal(t, path, s.File)
	})

	t.Run("malformed xml keeps document", func(t *testing.T) {
		dir := testutil.TempDir(t)
		path := testutil.WriteManifest(t, dir, "com.example.app")
		tiapp, err := New(WithFile(path))
		require.NoError(t, err)
		doc := tiapp.Doc()

		err = tiapp.Parse("<not valid xml")

		assert.ErrorIs(t, err, ErrParse)
		assert.Same(t, doc, tiapp.Doc())
		assert.Equal(t, path, tiapp.File())
	})

	t.Run("empty input", func(t *testing.T) {
		tiapp, err := New(WithFileSystem(notFoundFS(t)), WithStartDir(string(filepath.Separator)))
		require.NoError(t, err)

		err = tiapp.Parse("")
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Nil(t, tiapp.Doc())
	})
}

func TestTiapp_RoundTrip(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.WriteFile(t, dir, FileName, `<?xml version="1.0" encoding="UTF-8"?>
<ti:app xmlns:ti="http://ti.appcelerator.org">
	<id>com.example.round</id>
	<property name="ti.ui.defaultunit" type="string">dp</property>
	<modules>
		<module platform="android" version="2.0.0">ti.map</module>
	</modules>
</ti:app>`)

	tiapp, err := New(WithFile(path))
	require.NoError(t, err)

	again, err := xmldoc.Parse(tiapp.String())
	require.NoError(t, err)

	assert.Equal(t, "ti:app", again.RootName())

	props, err := again.Query("/*/property")
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "ti.ui.defaultunit", props[0].SelectAttr("name"))
	assert.Equal(t, "string", props[0].SelectAttr("type"))
	assert.Equal(t, "dp", strings.TrimSpace(props[0].InnerText()))

	module, err := again.Text("/*/modules/module[@platform='android']")
	require.NoError(t, err)
	assert.Equal(t, "ti.map", module)
}

func TestTiapp_ConcurrentReadsSeeConsistentPairs(t *testing.T) {
	base := testutil.TempDir(t)
	ids := []string{"com.example.one", "com.example.two"}
	paths := make(map[string]string, len(ids))
	for _, id := range ids {
		paths[id] = testutil.WriteManifest(t, testutil.EnsureDir(t, base, id), id)
	}

	tiapp, err := New(WithFile(paths[ids[0]]))
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = tiapp.Load(paths[ids[i%2]])
		}
	}()

	for i := 0; i < 50; i++ {
		file, doc := tiapp.Snapshot()
		id, err := doc.Text("/*/id")
		require.NoError(t, err)
		assert.Equal(t, paths[id], file)
	}

	wg.Wait()
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unloaded", Unloaded.String())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "parsed", Parsed.String())
}
