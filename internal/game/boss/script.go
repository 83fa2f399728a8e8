package boss

import (
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Variables visible to a phase-complete script. The script signals the
// end of the phase by setting complete = true.
const (
	scriptHealthPct = "health_pct"
	scriptElapsed   = "elapsed"
	scriptPhase     = "phase"
	scriptAttacks   = "attacks"
	scriptSummons   = "summons"
	scriptComplete  = "complete"
)

// ScriptTrigger evaluates a tengo script against the boss context. A
// script that fails to compile or run disables the trigger.
type ScriptTrigger struct {
	compiled *tengo.Compiled
	disabled bool
}

type scriptVar struct {
	name  string
	value any
}

// scriptDefaults declares every script variable with the value it holds
// before the first evaluation.
var scriptDefaults = []scriptVar{
	{scriptHealthPct, 1.0},
	{scriptElapsed, 0.0},
	{scriptPhase, 1},
	{scriptAttacks, 0},
	{scriptSummons, 0},
	{scriptComplete, false},
}

// NewScriptTrigger compiles src. Returns nil for an empty source.
func NewScriptTrigger(src string) *ScriptTrigger {
	if src == "" {
		return nil
	}
	return compileScript(src, scriptDefaults)
}

func compileScript(src string, vars []scriptVar) *ScriptTrigger {
	script := tengo.NewScript([]byte(src))
	for _, v := range vars {
		if err := script.Add(v.name, v.value); err != nil {
			slog.Warn("phase script disabled", "variable", v.name, "error", err)
			return &ScriptTrigger{disabled: true}
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		slog.Warn("phase script disabled", "error", err)
		return &ScriptTrigger{disabled: true}
	}
	return &ScriptTrigger{compiled: compiled}
}

// Disabled reports whether the trigger will never fire.
func (t *ScriptTrigger) Disabled() bool {
	return t == nil || t.disabled
}

// Evaluate runs the script and returns the value of complete.
func (t *ScriptTrigger) Evaluate(ctx *Context) bool {
	if t.Disabled() {
		return false
	}

	vars := []scriptVar{
		{scriptHealthPct, ctx.HealthPercent()},
		{scriptElapsed, ctx.Elapsed()},
		{scriptPhase, ctx.Phase()},
		{scriptAttacks, ctx.AttacksSinceSummon()},
		{scriptSummons, ctx.Summons()},
		{scriptComplete, false},
	}
	for _, v := range vars {
		if err := t.compiled.Set(v.name, v.value); err != nil {
			return t.fail(err)
		}
	}

	if err := t.compiled.Run(); err != nil {
		return t.fail(err)
	}
	return t.compiled.Get(scriptComplete).Bool()
}

func (t *ScriptTrigger) fail(err error) bool {
	slog.Warn("phase script disabled", "error", err)
	t.disabled = true
	return false
}
