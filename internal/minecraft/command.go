package minecraft

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Command defaults
const (
	DefaultJavaExecutable   = "java"
	DefaultLauncherName     = "flat-launcher"
	DefaultResolutionWidth  = 854
	DefaultResolutionHeight = 480
	DefaultUserType         = "msa"
	DemoFlag                = "--demo"
)

// Options configures the generated command line
type Options struct {
	Username        string
	UUID            string
	Token           string
	JVMArguments    []string
	Demo            bool
	JavaExecutable  string // defaults to "java"
	GameDirectory   string // defaults to the installation directory
	LauncherName    string
	LauncherVersion string

	// CustomResolution enables the width/height game arguments
	CustomResolution bool
	ResolutionWidth  int
	ResolutionHeight int
}

// commandContext holds everything needed for placeholder substitution
type commandContext struct {
	dir       string
	version   *Version
	options   Options
	classpath string
	natives   string
	env       Environment
}

// BuildCommand returns the argv that starts versionID installed in dir
func BuildCommand(dir, versionID string, opts Options) ([]string, error) {
	return BuildCommandFor(CurrentEnvironment(), dir, versionID, opts)
}

// BuildCommandFor is BuildCommand evaluated against an explicit host environment
func BuildCommandFor(env Environment, dir, versionID string, opts Options) ([]string, error) {
	v, err := LoadVersion(dir, versionID)
	if err != nil {
		return nil, err
	}
	if v.MainClass == "" {
		return nil, fmt.Errorf("version %s has no main class", versionID)
	}

	env = env.WithFeature(FeatureDemoUser, opts.Demo).
		WithFeature(FeatureCustomResolution, opts.CustomResolution)

	ctx := commandContext{
		dir:       dir,
		version:   v,
		options:   opts,
		classpath: Classpath(env, dir, v),
		natives:   NativesDir(dir, v.ID),
		env:       env,
	}

	java := opts.JavaExecutable
	if java == "" {
		java = DefaultJavaExecutable
	}

	command := []string{java}
	command = append(command, opts.JVMArguments...)

	if v.Arguments != nil && len(v.Arguments.JVM) > 0 {
		command = append(command, ctx.expand(v.Arguments.JVM)...)
	} else {
		command = append(command,
			"-Djava.library.path="+ctx.natives,
			"-cp", ctx.classpath,
		)
	}

	if logging, ok := v.Logging["client"]; ok && logging != nil && logging.Argument != "" && logging.File.ID != "" {
		path := filepath.Join(dir, "assets", "log_configs", logging.File.ID)
		command = append(command, strings.ReplaceAll(logging.Argument, "${path}", path))
	}

	command = append(command, v.MainClass)

	if v.MinecraftArguments != "" {
		for _, arg := range strings.Fields(v.MinecraftArguments) {
			command = append(command, ctx.replace(arg))
		}
		if opts.Demo {
			command = append(command, DemoFlag)
		}
		if opts.CustomResolution {
			command = append(command,
				"--width", ctx.replace("${resolution_width}"),
				"--height", ctx.replace("${resolution_height}"),
			)
		}
	} else if v.Arguments != nil {
		command = append(command, ctx.expand(v.Arguments.Game)...)
	}

	return command, nil
}

// Classpath joins allowed library jars and the client jar with the OS list separator
func Classpath(env Environment, dir string, v *Version) string {
	base := filepath.Join(dir, "libraries")
	entries := make([]string, 0, len(v.Libraries)+1)
	seen := make(map[string]bool, len(v.Libraries))
	for _, lib := range v.Libraries {
		if !RulesAllow(lib.Rules, env) {
			continue
		}
		path, ok := lib.ArtifactPath()
		if !ok || seen[path] {
			continue
		}
		seen[path] = true
		entries = append(entries, filepath.Join(base, filepath.FromSlash(path)))
	}
	entries = append(entries, VersionJarPath(dir, v.JarName()))
	return strings.Join(entries, string(os.PathListSeparator))
}

// expand evaluates rule-guarded arguments and substitutes placeholders
func (c commandContext) expand(args []Argument) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !RulesAllow(arg.Rules, c.env) {
			continue
		}
		for _, value := range arg.Values {
			out = append(out, c.replace(value))
		}
	}
	return out
}

// replace substitutes every known ${placeholder} in arg
func (c commandContext) replace(arg string) string {
	if !strings.Contains(arg, "${") {
		return arg
	}

	opts := c.options
	gameDir := opts.GameDirectory
	if gameDir == "" {
		gameDir = c.dir
	}
	launcherName := opts.LauncherName
	if launcherName == "" {
		launcherName = DefaultLauncherName
	}
	width, height := opts.ResolutionWidth, opts.ResolutionHeight
	if width <= 0 {
		width = DefaultResolutionWidth
	}
	if height <= 0 {
		height = DefaultResolutionHeight
	}
	assetsRoot := filepath.Join(c.dir, "assets")

	r := strings.NewReplacer(
		"${natives_directory}", c.natives,
		"${launcher_name}", launcherName,
		"${launcher_version}", opts.LauncherVersion,
		"${classpath}", c.classpath,
		"${classpath_separator}", string(os.PathListSeparator),
		"${library_directory}", filepath.Join(c.dir, "libraries"),
		"${auth_player_name}", opts.Username,
		"${version_name}", c.version.ID,
		"${game_directory}", gameDir,
		"${assets_root}", assetsRoot,
		"${game_assets}", filepath.Join(assetsRoot, "virtual", "legacy"),
		"${assets_index_name}", c.version.AssetsName(),
		"${auth_uuid}", opts.UUID,
		"${auth_access_token}", opts.Token,
		"${auth_session}", opts.Token,
		"${auth_xuid}", "",
		"${clientid}", "",
		"${user_type}", DefaultUserType,
		"${version_type}", c.version.Type,
		"${user_properties}", "{}",
		"${resolution_width}", strconv.Itoa(width),
		"${resolution_height}", strconv.Itoa(height),
	)
	return r.Replace(arg)
}

// BuildCommand is BuildCommandFor bound to the client's environment
func (c *Client) BuildCommand(dir, versionID string, opts Options) ([]string, error) {
	return BuildCommandFor(c.env, dir, versionID, opts)
}
