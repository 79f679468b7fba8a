package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"tags.csv":       "id,name\n1,casual\n2,formal\n",
		"categories.csv": "id,name\n1,Hoodies\n2,Shirts\n",
		"colours.csv":    "id,family,name,hex\n1,Red,Cherry Red,#D2042D\n",
		"brands.csv":     "id,name\n1,Slash\n",
		"products.csv":   "id,name,category\n1,Classic Black Hoodie,Hoodies\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeCatalogDir(t)

	cat, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, cat.Tags, 2)
	assert.Len(t, cat.Categories, 2)
	assert.Len(t, cat.Colours, 1)
	assert.Len(t, cat.Brands, 1)
	assert.Len(t, cat.Products, 1)

	assert.Equal(t, "casual", cat.Tags[0]["name"])
	assert.Equal(t, "#D2042D", cat.Colours[0]["hex"])
	assert.Equal(t, "Classic Black Hoodie", cat.Products[0]["name"])
}

func TestLoad_MissingFile(t *testing.T) {
	dir := writeCatalogDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "brands.csv")))

	_, err := Load(dir)
	require.Error(t, err)

	var loadErr *domain.CatalogLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "brands.csv", loadErr.File)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeCatalogDir(t)
	// row with a different field count than the header
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tags.csv"), []byte("id,name\n1,casual,extra\n"), 0644))

	_, err := Load(dir)
	var loadErr *domain.CatalogLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "tags.csv", loadErr.File)
}

func TestChatContext(t *testing.T) {
	dir := writeCatalogDir(t)
	cat, err := Load(dir)
	require.NoError(t, err)

	ctx := cat.ChatContext()
	assert.Contains(t, ctx, `"products"`)
	assert.Contains(t, ctx, `"brands"`)
	assert.Contains(t, ctx, "Classic Black Hoodie")
}

func TestAnalysisContext_ExcludesProductsAndBrands(t *testing.T) {
	dir := writeCatalogDir(t)
	cat, err := Load(dir)
	require.NoError(t, err)

	ctx := cat.AnalysisContext()
	assert.Contains(t, ctx, `"tags"`)
	assert.Contains(t, ctx, `"colors"`)
	assert.NotContains(t, ctx, `"products"`)
	assert.NotContains(t, ctx, `"brands"`)
}
