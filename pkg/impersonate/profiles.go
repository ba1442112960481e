package impersonate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bogdanfinn/tls-client/profiles"
)

// Defaults applied when the caller does not pick a fingerprint.
const (
	DefaultProfile = "chrome_131"
	DefaultOS      = "windows"
)

// Browser families carried by the catalog. The family decides which
// User-Agent template is paired with the OS choice.
const (
	familyChrome  = "chrome"
	familyEdge    = "edge"
	familyFirefox = "firefox"
	familySafari  = "safari"
	familyOkhttp  = "okhttp"
)

// Profile pairs a public catalog id with an engine fingerprint.
type Profile struct {
	client  profiles.ClientProfile
	family  string
	version string
}

// catalog is the single table every profile id resolves through.
// Edge ids map to the Chromium fingerprint of the same generation; Edge is
// Chromium on the wire and the engine ships no dedicated Edge profiles.
var catalog = map[string]Profile{
	"chrome_133": {profiles.Chrome_133, familyChrome, "133"},
	"chrome_131": {profiles.Chrome_131, familyChrome, "131"},
	"chrome_124": {profiles.Chrome_124, familyChrome, "124"},
	"chrome_120": {profiles.Chrome_120, familyChrome, "120"},
	"chrome_117": {profiles.Chrome_117, familyChrome, "117"},
	"chrome_112": {profiles.Chrome_112, familyChrome, "112"},
	"chrome_111": {profiles.Chrome_111, familyChrome, "111"},
	"chrome_110": {profiles.Chrome_110, familyChrome, "110"},
	"chrome_109": {profiles.Chrome_109, familyChrome, "109"},
	"chrome_108": {profiles.Chrome_108, familyChrome, "108"},
	"chrome_107": {profiles.Chrome_107, familyChrome, "107"},
	"chrome_106": {profiles.Chrome_106, familyChrome, "106"},
	"chrome_105": {profiles.Chrome_105, familyChrome, "105"},
	"chrome_104": {profiles.Chrome_104, familyChrome, "104"},
	"chrome_103": {profiles.Chrome_103, familyChrome, "103"},

	"edge_131": {profiles.Chrome_131, familyEdge, "131"},
	"edge_124": {profiles.Chrome_124, familyEdge, "124"},
	"edge_120": {profiles.Chrome_120, familyEdge, "120"},
	"edge_117": {profiles.Chrome_117, familyEdge, "117"},

	"firefox_133": {profiles.Firefox_133, familyFirefox, "133"},
	"firefox_132": {profiles.Firefox_132, familyFirefox, "132"},
	"firefox_123": {profiles.Firefox_123, familyFirefox, "123"},
	"firefox_120": {profiles.Firefox_120, familyFirefox, "120"},
	"firefox_117": {profiles.Firefox_117, familyFirefox, "117"},
	"firefox_110": {profiles.Firefox_110, familyFirefox, "110"},
	"firefox_105": {profiles.Firefox_105, familyFirefox, "105"},
	"firefox_102": {profiles.Firefox_102, familyFirefox, "102"},

	"safari_16_0":         {profiles.Safari_16_0, familySafari, "16.0"},
	"safari_15_6_1":       {profiles.Safari_15_6_1, familySafari, "15.6.1"},
	"safari_ipad_15_6":    {profiles.Safari_Ipad_15_6, familySafari, "15.6"},
	"safari_iphone_17_0":  {profiles.Safari_IOS_17_0, familySafari, "17.0"},
	"safari_iphone_16_0":  {profiles.Safari_IOS_16_0, familySafari, "16.0"},
	"safari_iphone_15_6":  {profiles.Safari_IOS_15_6, familySafari, "15.6"},
	"safari_iphone_15_5":  {profiles.Safari_IOS_15_5, familySafari, "15.5"},

	"okhttp_4_12_0": {profiles.Okhttp4Android13, familyOkhttp, "4.12.0"},
	"okhttp_4_11_0": {profiles.Okhttp4Android12, familyOkhttp, "4.11.0"},
	"okhttp_4_10_0": {profiles.Okhttp4Android11, familyOkhttp, "4.10.0"},
	"okhttp_4_9_3":  {profiles.Okhttp4Android10, familyOkhttp, "4.9.3"},
	"okhttp_3_14_9": {profiles.Okhttp4Android7, familyOkhttp, "3.14.9"},
}

// osPlatforms maps the OS enum onto User-Agent platform fragments.
var osPlatforms = map[string]string{
	"windows": "Windows NT 10.0; Win64; x64",
	"macos":   "Macintosh; Intel Mac OS X 10_15_7",
	"linux":   "X11; Linux x86_64",
	"android": "Linux; Android 13",
	"ios":     "iPhone; CPU iPhone OS 17_0 like Mac OS X",
}

// ProfileNames returns every catalog id, sorted for stable schemas.
func ProfileNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OSNames returns the OS enum, sorted for stable schemas.
func OSNames() []string {
	names := make([]string, 0, len(osPlatforms))
	for name := range osPlatforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupProfile(name string) (Profile, error) {
	p, ok := catalog[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown impersonation profile '%s'", name)
	}
	return p, nil
}

func lookupPlatform(name string) (string, error) {
	platform, ok := osPlatforms[name]
	if !ok {
		return "", fmt.Errorf("unknown impersonation OS '%s' (use: %s)", name, strings.Join(OSNames(), ", "))
	}
	return platform, nil
}

// userAgent renders the default User-Agent for a profile/OS pair. Callers can
// still override it with an explicit header.
func userAgent(p Profile, platform string) string {
	switch p.family {
	case familyChrome:
		return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s.0.0.0 Safari/537.36",
			platform, p.version)
	case familyEdge:
		return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s.0.0.0 Safari/537.36 Edg/%s.0.0.0",
			platform, p.version, p.version)
	case familyFirefox:
		return fmt.Sprintf("Mozilla/5.0 (%s; rv:%s.0) Gecko/20100101 Firefox/%s.0",
			platform, p.version, p.version)
	case familySafari:
		return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/%s Safari/605.1.15",
			platform, p.version)
	case familyOkhttp:
		return fmt.Sprintf("okhttp/%s", p.version)
	default:
		return fmt.Sprintf("Mozilla/5.0 (%s)", platform)
	}
}
