package impersonate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ContainsDefaults(t *testing.T) {
	_, err := lookupProfile(DefaultProfile)
	require.NoError(t, err)
	_, err = lookupPlatform(DefaultOS)
	require.NoError(t, err)
}

func TestProfileNames_ResolveAndSorted(t *testing.T) {
	names := ProfileNames()
	require.NotEmpty(t, names)
	assert.IsType(t, []string{}, names)

	for i, name := range names {
		_, err := lookupProfile(name)
		require.NoError(t, err, "catalog id %q must resolve", name)
		if i > 0 {
			assert.Less(t, names[i-1], name)
		}
	}
}

func TestOSNames(t *testing.T) {
	assert.Equal(t, []string{"android", "ios", "linux", "macos", "windows"}, OSNames())
}

func TestNewClient_UnknownIdentifiers(t *testing.T) {
	_, err := NewClient(Options{Profile: "netscape_4", OS: DefaultOS, Timeout: time.Second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown impersonation profile")

	_, err = NewClient(Options{Profile: DefaultProfile, OS: "templeos", Timeout: time.Second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown impersonation OS")
}

func TestUserAgent(t *testing.T) {
	tests := []struct {
		profile string
		os      string
		want    []string
	}{
		{profile: "chrome_131", os: "windows", want: []string{"Windows NT 10.0", "Chrome/131.0.0.0"}},
		{profile: "chrome_131", os: "linux", want: []string{"X11; Linux x86_64", "Chrome/131"}},
		{profile: "edge_131", os: "windows", want: []string{"Edg/131.0.0.0", "Chrome/131"}},
		{profile: "firefox_133", os: "macos", want: []string{"Mac OS X", "Firefox/133.0"}},
		{profile: "safari_16_0", os: "macos", want: []string{"Version/16.0", "Safari/605.1.15"}},
		{profile: "okhttp_4_12_0", os: "android", want: []string{"okhttp/4.12.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.profile+"_"+tt.os, func(t *testing.T) {
			p, err := lookupProfile(tt.profile)
			require.NoError(t, err)
			platform, err := lookupPlatform(tt.os)
			require.NoError(t, err)

			ua := userAgent(p, platform)
			for _, fragment := range tt.want {
				assert.True(t, strings.Contains(ua, fragment), "user agent %q must contain %q", ua, fragment)
			}
		})
	}
}
