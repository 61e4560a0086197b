package autolaunch

import (
	"fmt"
	"strings"
)

// Artifact rendering for the file-backed mechanisms. These helpers are
// pure and carry no build tags so the on-disk formats are covered by
// tests on every development platform.

// agentLabel derives the launchd label for an application name.
func agentLabel(appName string) string {
	return "com.lodestar." + sanitizeName(appName)
}

// entryFileName derives the XDG autostart entry file name.
func entryFileName(appName string) string {
	return sanitizeName(appName) + ".desktop"
}

func sanitizeName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "lodestar"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

// launchArguments builds the launchd ProgramArguments vector. Bundle
// roots are started through open(1) since launchd cannot execute a
// bundle directory itself.
func launchArguments(appPath string) []string {
	if strings.HasSuffix(appPath, ".app") {
		return []string{"/usr/bin/open", appPath}
	}
	return []string{appPath}
}

// buildLaunchAgentPlist renders the user launch agent installed under
// ~/Library/LaunchAgents. RunAtLoad only: the agent starts the
// application at login and never restarts it.
func buildLaunchAgentPlist(label string, args []string) string {
	var programArgs strings.Builder
	for _, arg := range args {
		programArgs.WriteString("\t\t<string>")
		programArgs.WriteString(xmlEscape(arg))
		programArgs.WriteString("</string>\n")
	}

	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
%s	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`,
		xmlEscape(label),
		programArgs.String(),
	)
}

// buildDesktopEntry renders the XDG autostart desktop entry.
func buildDesktopEntry(appName, appPath string) string {
	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		appName,
		execLine(appPath),
	)
}

// execLine quotes paths containing spaces unless already quoted.
func execLine(appPath string) string {
	if strings.Contains(appPath, " ") && !strings.HasPrefix(appPath, `"`) {
		return `"` + appPath + `"`
	}
	return appPath
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
