package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilroby/nsefi-harvester/pkg/config"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config.InitConfig("")

	assert.Equal(t, 30*time.Second, viper.GetDuration("http.timeout"))
	assert.False(t, viper.GetBool("http.respect_robots"))
	assert.NotEmpty(t, viper.GetString("http.user_agent"))

	assert.Equal(t, "data/cache", viper.GetString("snapshot.dir"))
	assert.Equal(t, "updates", viper.GetString("snapshot.prefix"))
	assert.Equal(t, 3*time.Hour, viper.GetDuration("snapshot.stale_after"))

	assert.Equal(t, "none", viper.GetString("mirror.provider"))
	assert.Equal(t, ":8080", viper.GetString("api.addr"))

	srcs := viper.Get("sources").([]map[string]any)
	require.Len(t, srcs, 10)
	assert.Equal(t, "CTUIL", srcs[0]["category"])

	typesByURL := map[string]string{}
	cercCount := 0
	for _, src := range srcs[1:] {
		require.Equal(t, "CERC", src["category"])
		cercCount++
		typesByURL[src["url"].(string)] = src["type"].(string)
	}
	assert.Equal(t, 9, cercCount, "every CERC list page is registered")
	assert.Equal(t, "Orders", typesByURL["https://cercind.gov.in/recent_orders.html"])
	assert.Equal(t, "ROP", typesByURL["https://cercind.gov.in/recent_rops.html"])
	assert.Equal(t, "Draft Regulation", typesByURL["https://cercind.gov.in/Draft_reg.html"])
	assert.Equal(t, "Regulation", typesByURL["https://cercind.gov.in/Current_reg.html"])
}

func TestInitConfigEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HARVESTER_SNAPSHOT_DIR", "/tmp/elsewhere")

	config.InitConfig("")

	assert.Equal(t, "/tmp/elsewhere", viper.GetString("snapshot.dir"))
}
