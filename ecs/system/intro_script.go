package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/hudcompass/prefabs"
)

// introScriptRuntime runs one intro script. The script gets `frame` and
// `skip` and must leave a boolean `show_hud`.
type introScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
}

func newIntroScriptRuntime(scriptPath string, src []byte) (*introScriptRuntime, error) {
	if strings.TrimSpace(scriptPath) == "" {
		return nil, fmt.Errorf("intro script path is empty")
	}

	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	_ = script.Add("skip", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", scriptPath, err)
	}
	return &introScriptRuntime{scriptPath: scriptPath, compiled: compiled}, nil
}

func loadIntroScriptRuntime(scriptPath string) (*introScriptRuntime, error) {
	src, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, err
	}
	return newIntroScriptRuntime(scriptPath, src)
}

// showHUD runs the script for one frame.
func (rt *introScriptRuntime) showHUD(frame int, skip bool) (bool, error) {
	if rt == nil || rt.compiled == nil {
		return false, fmt.Errorf("nil intro script runtime")
	}
	if err := rt.compiled.Set("frame", frame); err != nil {
		return false, err
	}
	if err := rt.compiled.Set("skip", skip); err != nil {
		return false, err
	}
	if err := rt.compiled.Run(); err != nil {
		return false, err
	}
	if !rt.compiled.IsDefined("show_hud") {
		return false, fmt.Errorf("%s does not define show_hud", rt.scriptPath)
	}
	return rt.compiled.Get("show_hud").Bool(), nil
}
