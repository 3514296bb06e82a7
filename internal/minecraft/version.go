package minecraft

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// Rule actions
const (
	ActionAllow    = "allow"
	ActionDisallow = "disallow"
)

// Rule OS names as used in version JSON files
const (
	RuleOSWindows = "windows"
	RuleOSMac     = "osx"
	RuleOSLinux   = "linux"
)

// Feature flags understood by argument rules
const (
	FeatureDemoUser         = "is_demo_user"
	FeatureCustomResolution = "has_custom_resolution"
)

// ErrVersionNotFound is returned when a version is neither installed nor listed in the manifest
var ErrVersionNotFound = errors.New("version not found")

// Environment describes the host a rule list is evaluated against
type Environment struct {
	OS        string // windows, osx or linux
	Arch      string // x86 for 32-bit hosts
	OSVersion string
	Features  map[string]bool
}

// CurrentEnvironment returns the environment of the running host with no features enabled
func CurrentEnvironment() Environment {
	env := Environment{
		OS:       RuleOSLinux,
		Arch:     runtime.GOARCH,
		Features: map[string]bool{},
	}
	switch runtime.GOOS {
	case "windows":
		env.OS = RuleOSWindows
	case "darwin":
		env.OS = RuleOSMac
	}
	if runtime.GOARCH == "386" {
		env.Arch = "x86"
	}
	return env
}

// WithFeature returns a copy of env with the named feature set
func (env Environment) WithFeature(name string, enabled bool) Environment {
	features := make(map[string]bool, len(env.Features)+1)
	for k, v := range env.Features {
		features[k] = v
	}
	features[name] = enabled
	env.Features = features
	return env
}

// nativeArch is the value substituted for ${arch} in native classifiers
func (env Environment) nativeArch() string {
	if env.Arch == "x86" {
		return "32"
	}
	return "64"
}

// RuleOS restricts a rule to an operating system
type RuleOS struct {
	Name    string `json:"name,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Version string `json:"version,omitempty"`
}

// Rule is a single allow/disallow entry
type Rule struct {
	Action   string          `json:"action"`
	OS       *RuleOS         `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// matches reports whether every condition of the rule holds in env
func (r Rule) matches(env Environment) bool {
	if r.OS != nil {
		if r.OS.Name != "" && r.OS.Name != env.OS {
			return false
		}
		if r.OS.Arch == "x86" && env.Arch != "x86" {
			return false
		}
		if r.OS.Version != "" {
			re, err := regexp.Compile(r.OS.Version)
			if err != nil || !re.MatchString(env.OSVersion) {
				return false
			}
		}
	}
	for name, want := range r.Features {
		if env.Features[name] != want {
			return false
		}
	}
	return true
}

// Allows evaluates a single rule: an allow rule permits only when it matches,
// a disallow rule forbids only when it matches.
func (r Rule) Allows(env Environment) bool {
	matched := r.matches(env)
	if r.Action == ActionDisallow {
		return !matched
	}
	return matched
}

// RulesAllow evaluates a rule list. An empty list allows; otherwise every rule must allow.
func RulesAllow(rules []Rule, env Environment) bool {
	for _, r := range rules {
		if !r.Allows(env) {
			return false
		}
	}
	return true
}

// Argument is either a plain string or a rule-guarded value list
type Argument struct {
	Rules  []Rule
	Values []string
}

// UnmarshalJSON accepts "str", {"rules": [...], "value": "str"} and {"rules": [...], "value": ["a", "b"]}
func (a *Argument) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		a.Values = []string{plain}
		return nil
	}

	var guarded struct {
		Rules []Rule          `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &guarded); err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}
	a.Rules = guarded.Rules

	var single string
	if err := json.Unmarshal(guarded.Value, &single); err == nil {
		a.Values = []string{single}
		return nil
	}
	if err := json.Unmarshal(guarded.Value, &a.Values); err != nil {
		return fmt.Errorf("invalid argument value: %w", err)
	}
	return nil
}

// MarshalJSON writes the same shapes UnmarshalJSON reads
func (a Argument) MarshalJSON() ([]byte, error) {
	if len(a.Rules) == 0 && len(a.Values) == 1 {
		return json.Marshal(a.Values[0])
	}
	return json.Marshal(struct {
		Rules []Rule   `json:"rules,omitempty"`
		Value []string `json:"value"`
	}{a.Rules, a.Values})
}

// Arguments holds modern (1.13+) split argument lists
type Arguments struct {
	Game []Argument `json:"game"`
	JVM  []Argument `json:"jvm"`
}

// Artifact is a downloadable file
type Artifact struct {
	ID   string `json:"id,omitempty"`
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// LibraryDownloads lists the artifact and native classifiers of a library
type LibraryDownloads struct {
	Artifact    *Artifact           `json:"artifact,omitempty"`
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

// Extract lists paths excluded when unpacking natives
type Extract struct {
	Exclude []string `json:"exclude"`
}

// Library is a Maven-coordinate dependency of a version
type Library struct {
	Name      string            `json:"name"`
	URL       string            `json:"url,omitempty"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
	Extract   *Extract          `json:"extract,omitempty"`
}

// MavenPath converts group:artifact:version[:classifier] to its repository path
func MavenPath(name string) (string, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 {
		return "", fmt.Errorf("invalid library name: %q", name)
	}
	group := strings.ReplaceAll(parts[0], ".", "/")
	artifact, version := parts[1], parts[2]
	file := artifact + "-" + version
	if len(parts) > 3 {
		file += "-" + parts[3]
	}
	return fmt.Sprintf("%s/%s/%s/%s.jar", group, artifact, version, file), nil
}

// ArtifactPath returns the relative path of the main library jar, if any
func (l Library) ArtifactPath() (string, bool) {
	if l.Downloads != nil && l.Downloads.Artifact != nil {
		if l.Downloads.Artifact.Path != "" {
			return l.Downloads.Artifact.Path, true
		}
	}
	if l.Downloads != nil && l.Downloads.Artifact == nil && len(l.Downloads.Classifiers) > 0 {
		// natives-only library
		return "", false
	}
	path, err := MavenPath(l.Name)
	if err != nil {
		return "", false
	}
	return path, true
}

// NativeClassifier returns the classifier carrying natives for env, if any
func (l Library) NativeClassifier(env Environment) (string, bool) {
	classifier, ok := l.Natives[env.OS]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(classifier, "${arch}", env.nativeArch()), true
}

// AssetIndex references the asset index file of a version
type AssetIndex struct {
	Artifact
	TotalSize int64 `json:"totalSize"`
}

// LoggingFile references the client logging configuration
type LoggingFile struct {
	Argument string   `json:"argument"`
	File     Artifact `json:"file"`
	Type     string   `json:"type"`
}

// JavaVersion is the runtime requested by a version
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// Version is the parsed content of versions/<id>/<id>.json
type Version struct {
	ID                 string                  `json:"id"`
	InheritsFrom       string                  `json:"inheritsFrom,omitempty"`
	Type               string                  `json:"type"`
	MainClass          string                  `json:"mainClass"`
	MinecraftArguments string                  `json:"minecraftArguments,omitempty"`
	Arguments          *Arguments              `json:"arguments,omitempty"`
	AssetIndex         *AssetIndex             `json:"assetIndex,omitempty"`
	Assets             string                  `json:"assets,omitempty"`
	Downloads          map[string]Artifact     `json:"downloads,omitempty"`
	Libraries          []Library               `json:"libraries"`
	Logging            map[string]*LoggingFile `json:"logging,omitempty"`
	JavaVersion        *JavaVersion            `json:"javaVersion,omitempty"`
	Jar                string                  `json:"jar,omitempty"`
	ReleaseTime        string                  `json:"releaseTime,omitempty"`
}

// AssetsName returns the asset index identifier used for ${assets_index_name}
func (v *Version) AssetsName() string {
	if v.Assets != "" {
		return v.Assets
	}
	if v.AssetIndex != nil && v.AssetIndex.ID != "" {
		return v.AssetIndex.ID
	}
	return v.ID
}

// JarName returns the version whose jar is launched
func (v *Version) JarName() string {
	if v.Jar != "" {
		return v.Jar
	}
	return v.ID
}

// mergeParent fills v with everything it inherits from parent. Libraries of the
// child come first, argument lists are concatenated, scalar child values win.
func (v *Version) mergeParent(parent *Version) {
	v.Libraries = append(append([]Library{}, v.Libraries...), parent.Libraries...)
	if v.MainClass == "" {
		v.MainClass = parent.MainClass
	}
	if v.MinecraftArguments == "" {
		v.MinecraftArguments = parent.MinecraftArguments
	}
	if parent.Arguments != nil {
		merged := &Arguments{}
		merged.Game = append(merged.Game, parent.Arguments.Game...)
		merged.JVM = append(merged.JVM, parent.Arguments.JVM...)
		if v.Arguments != nil {
			merged.Game = append(merged.Game, v.Arguments.Game...)
			merged.JVM = append(merged.JVM, v.Arguments.JVM...)
		}
		v.Arguments = merged
	}
	if v.AssetIndex == nil {
		v.AssetIndex = parent.AssetIndex
	}
	if v.Assets == "" {
		v.Assets = parent.Assets
	}
	if v.Downloads == nil {
		v.Downloads = parent.Downloads
	}
	if v.Logging == nil {
		v.Logging = parent.Logging
	}
	if v.JavaVersion == nil {
		v.JavaVersion = parent.JavaVersion
	}
	if v.Jar == "" {
		v.Jar = parent.JarName()
	}
	if v.Type == "" {
		v.Type = parent.Type
	}
}

// VersionJSONPath returns versions/<id>/<id>.json below dir
func VersionJSONPath(dir, versionID string) string {
	return filepath.Join(dir, "versions", versionID, versionID+".json")
}

// VersionJarPath returns versions/<id>/<id>.jar below dir
func VersionJarPath(dir, versionID string) string {
	return filepath.Join(dir, "versions", versionID, versionID+".jar")
}

// NativesDir returns the directory natives of a version are extracted to
func NativesDir(dir, versionID string) string {
	return filepath.Join(dir, "versions", versionID, "natives")
}

// readVersionFile parses a single version JSON without resolving inheritance
func readVersionFile(dir, versionID string) (*Version, error) {
	data, err := os.ReadFile(VersionJSONPath(dir, versionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", versionID, ErrVersionNotFound)
		}
		return nil, fmt.Errorf("failed to read version %s: %w", versionID, err)
	}
	var v Version
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse version %s: %w", versionID, err)
	}
	return &v, nil
}

// LoadVersion reads an installed version and resolves its inheritsFrom chain
func LoadVersion(dir, versionID string) (*Version, error) {
	v, err := readVersionFile(dir, versionID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{versionID: true}
	for parentID := v.InheritsFrom; parentID != ""; {
		if seen[parentID] {
			return nil, fmt.Errorf("inheritance cycle at %s", parentID)
		}
		seen[parentID] = true

		parent, err := readVersionFile(dir, parentID)
		if err != nil {
			return nil, err
		}
		v.mergeParent(parent)
		parentID = parent.InheritsFrom
	}
	v.InheritsFrom = ""
	return v, nil
}

// IsInstalled reports whether the version JSON and jar of versionID exist below dir
func IsInstalled(dir, versionID string) bool {
	v, err := LoadVersion(dir, versionID)
	if err != nil {
		return false
	}
	_, err = os.Stat(VersionJarPath(dir, v.JarName()))
	return err == nil
}

// IsInstalled is the package-level IsInstalled, exposed for callers holding a Client
func (c *Client) IsInstalled(dir, versionID string) bool {
	return IsInstalled(dir, versionID)
}
