package minecraft

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modernVersion() Version {
	return Version{
		ID:        "1.20.1",
		Type:      TypeRelease,
		MainClass: "net.minecraft.client.main.Main",
		Assets:    "5",
		Libraries: []Library{
			{Name: "com.mojang:brigadier:1.0.18"},
			{Name: "ca.weblite:java-objc-bridge:1.1", Rules: []Rule{{Action: ActionAllow, OS: &RuleOS{Name: RuleOSMac}}}},
		},
		Arguments: &Arguments{
			JVM: []Argument{
				{Rules: []Rule{{Action: ActionAllow, OS: &RuleOS{Name: RuleOSMac}}}, Values: []string{"-XstartOnFirstThread"}},
				{Values: []string{"-Djava.library.path=${natives_directory}"}},
				{Values: []string{"-Dminecraft.launcher.brand=${launcher_name}"}},
				{Values: []string{"-cp"}},
				{Values: []string{"${classpath}"}},
			},
			Game: []Argument{
				{Values: []string{"--username"}}, {Values: []string{"${auth_player_name}"}},
				{Values: []string{"--version"}}, {Values: []string{"${version_name}"}},
				{Values: []string{"--gameDir"}}, {Values: []string{"${game_directory}"}},
				{Values: []string{"--assetIndex"}}, {Values: []string{"${assets_index_name}"}},
				{Values: []string{"--uuid"}}, {Values: []string{"${auth_uuid}"}},
				{Values: []string{"--accessToken"}}, {Values: []string{"${auth_access_token}"}},
				{Values: []string{"--versionType"}}, {Values: []string{"${version_type}"}},
				{Rules: []Rule{{Action: ActionAllow, Features: map[string]bool{FeatureDemoUser: true}}}, Values: []string{"--demo"}},
				{Rules: []Rule{{Action: ActionAllow, Features: map[string]bool{FeatureCustomResolution: true}}},
					Values: []string{"--width", "${resolution_width}", "--height", "${resolution_height}"}},
			},
		},
		Logging: map[string]*LoggingFile{"client": {
			Argument: "-Dlog4j.configurationFile=${path}",
			File:     Artifact{ID: "client-1.12.xml"},
		}},
	}
}

func indexOf(args []string, value string) int {
	for i, a := range args {
		if a == value {
			return i
		}
	}
	return -1
}

func valueAfter(t *testing.T, args []string, flag string) string {
	t.Helper()
	i := indexOf(args, flag)
	require.GreaterOrEqual(t, i, 0, "flag %s missing from %v", flag, args)
	require.Less(t, i+1, len(args))
	return args[i+1]
}

func TestBuildCommand_Modern(t *testing.T) {
	dir := t.TempDir()
	writeVersion(t, dir, modernVersion())

	args, err := BuildCommandFor(linuxEnv(), dir, "1.20.1", Options{
		Username:       "Steve",
		UUID:           "uuid-1",
		Token:          "",
		JVMArguments:   []string{"-Xmx2048M", "-Xms1024M"},
		JavaExecutable: "/usr/bin/java",
	})
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/java", args[0])
	assert.Equal(t, "-Xmx2048M", args[1])
	assert.Equal(t, "-Xms1024M", args[2])
	assert.NotContains(t, args, "-XstartOnFirstThread")
	assert.Contains(t, args, "-Djava.library.path="+NativesDir(dir, "1.20.1"))
	assert.Contains(t, args, "-Dminecraft.launcher.brand="+DefaultLauncherName)
	assert.Contains(t, args, "-Dlog4j.configurationFile="+filepath.Join(dir, "assets", "log_configs", "client-1.12.xml"))

	mainIdx := indexOf(args, "net.minecraft.client.main.Main")
	require.Greater(t, mainIdx, 0)
	assert.Less(t, indexOf(args, "-cp"), mainIdx, "jvm arguments precede the main class")
	assert.Greater(t, indexOf(args, "--username"), mainIdx, "game arguments follow the main class")

	assert.Equal(t, "Steve", valueAfter(t, args, "--username"))
	assert.Equal(t, "1.20.1", valueAfter(t, args, "--version"))
	assert.Equal(t, dir, valueAfter(t, args, "--gameDir"))
	assert.Equal(t, "5", valueAfter(t, args, "--assetIndex"))
	assert.Equal(t, "uuid-1", valueAfter(t, args, "--uuid"))
	assert.Equal(t, "", valueAfter(t, args, "--accessToken"))
	assert.Equal(t, TypeRelease, valueAfter(t, args, "--versionType"))
	assert.NotContains(t, args, DemoFlag)
	assert.NotContains(t, args, "--width")

	classpath := strings.Split(valueAfter(t, args, "-cp"), string(os.PathListSeparator))
	assert.Equal(t, []string{
		filepath.Join(dir, "libraries", "com", "mojang", "brigadier", "1.0.18", "brigadier-1.0.18.jar"),
		VersionJarPath(dir, "1.20.1"),
	}, classpath)

	for _, a := range args {
		assert.NotContains(t, a, "${", "unresolved placeholder in %q", a)
	}
}

func TestBuildCommand_ModernDemoAndResolution(t *testing.T) {
	dir := t.TempDir()
	writeVersion(t, dir, modernVersion())

	args, err := BuildCommandFor(linuxEnv(), dir, "1.20.1", Options{
		Username:         "Alex",
		Demo:             true,
		CustomResolution: true,
		ResolutionWidth:  1280,
		ResolutionHeight: 720,
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultJavaExecutable, args[0])
	assert.Contains(t, args, DemoFlag)
	assert.Equal(t, "1280", valueAfter(t, args, "--width"))
	assert.Equal(t, "720", valueAfter(t, args, "--height"))
}

func TestBuildCommand_Legacy(t *testing.T) {
	dir := t.TempDir()
	writeVersion(t, dir, Version{
		ID:                 "1.8.9",
		Type:               TypeRelease,
		MainClass:          "net.minecraft.client.main.Main",
		Assets:             "1.8",
		MinecraftArguments: "--username ${auth_player_name} --version ${version_name} --gameDir ${game_directory} --assetsDir ${assets_root} --uuid ${auth_uuid} --accessToken ${auth_access_token} --userProperties ${user_properties} --userType ${user_type}",
		Libraries:          []Library{{Name: "com.google.guava:guava:17.0"}},
	})

	args, err := BuildCommandFor(linuxEnv(), dir, "1.8.9", Options{
		Username:     "Notch",
		UUID:         "u",
		JVMArguments: []string{"-Xmx1024M", "-Xms512M"},
		Demo:         true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"java", "-Xmx1024M", "-Xms512M", "-Djava.library.path=" + NativesDir(dir, "1.8.9"), "-cp"}, args[:5])
	assert.Equal(t, "net.minecraft.client.main.Main", args[6])
	assert.Equal(t, "Notch", valueAfter(t, args, "--username"))
	assert.Equal(t, filepath.Join(dir, "assets"), valueAfter(t, args, "--assetsDir"))
	assert.Equal(t, "{}", valueAfter(t, args, "--userProperties"))
	assert.Equal(t, DefaultUserType, valueAfter(t, args, "--userType"))
	assert.Equal(t, DemoFlag, args[len(args)-1])
}

func TestBuildCommand_CustomGameDirectory(t *testing.T) {
	dir := t.TempDir()
	writeVersion(t, dir, modernVersion())

	args, err := BuildCommandFor(linuxEnv(), dir, "1.20.1", Options{GameDirectory: "/srv/instance"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/instance", valueAfter(t, args, "--gameDir"))
}

func TestBuildCommand_NotInstalled(t *testing.T) {
	_, err := BuildCommand(t.TempDir(), "1.20.1", Options{})
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestBuildCommand_NoMainClass(t *testing.T) {
	dir := t.TempDir()
	writeVersion(t, dir, Version{ID: "broken"})

	_, err := BuildCommand(dir, "broken", Options{})
	assert.Error(t, err)
}
