package ability

// Area deals damage once to every hostile in Radius. The center is the
// caster, or the aim point at the ability range when AtAimPoint is set.
type Area struct {
	Radius     float64
	AtAimPoint bool
}

func (a *Area) Kind() Kind { return KindArea }

func (a *Area) Execute(ctx *Context) {
	center := ctx.Origin()
	if a.AtAimPoint {
		center = ctx.AimPoint(ctx.Ability.Range)
	}

	base := ctx.Ability.Damage(ctx.Caster)
	for _, target := range ctx.hostilesInRadius(center, a.Radius) {
		ctx.Strike(base, target)
	}
}
