package scene

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Values passed between scene builtins

type sexpVec3 struct {
	vec core.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpTexture struct {
	kind string
	tex  material.ColorSource
}

func (t *sexpTexture) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s texture)", t.kind)
}
func (t *sexpTexture) Type() *zygo.RegisteredType { return nil }

type sexpMaterial struct {
	kind string
	mat  material.Material
}

func (m *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s material)", m.kind)
}
func (m *sexpMaterial) Type() *zygo.RegisteredType { return nil }

type sexpObject struct {
	kind string
	obj  geometry.Hittable
}

func (o *sexpObject) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s object)", o.kind)
}
func (o *sexpObject) Type() *zygo.RegisteredType { return nil }

// Argument parsing

// scriptArgs separates keyword arguments from positional ones
type scriptArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseScriptArgs(args []zygo.Sexp) scriptArgs {
	result := scriptArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		if name, ok := keywordName(args[i]); ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i++
			} else {
				result.kw[name] = zygo.SexpNull
			}
			continue
		}
		result.positional = append(result.positional, args[i])
	}
	return result
}

func keywordName(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, keywordPrefix) {
		return "", false
	}
	return str.S[len(keywordPrefix):], true
}

func describe(s zygo.Sexp) string {
	return fmt.Sprintf("%T (%s)", s, s.SexpString(nil))
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", describe(s))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %s", describe(s))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", describe(s))
}

func toVec3(s zygo.Sexp) (core.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return core.Vec3{}, fmt.Errorf("expected vec3, got %s", describe(s))
}

// toColorSource accepts either a texture or a plain color
func toColorSource(s zygo.Sexp) (material.ColorSource, error) {
	switch v := s.(type) {
	case *sexpTexture:
		return v.tex, nil
	case *sexpVec3:
		return material.NewSolidColor(v.vec), nil
	}
	return nil, fmt.Errorf("expected color or texture, got %s", describe(s))
}

func toMaterial(s zygo.Sexp) (material.Material, error) {
	if m, ok := s.(*sexpMaterial); ok {
		return m.mat, nil
	}
	return nil, fmt.Errorf("expected material, got %s", describe(s))
}

func toObject(s zygo.Sexp) (geometry.Hittable, error) {
	if o, ok := s.(*sexpObject); ok {
		return o.obj, nil
	}
	return nil, fmt.Errorf("expected object, got %s", describe(s))
}

// toObjects flattens objects and lists or arrays of objects
func toObjects(args []zygo.Sexp) ([]geometry.Hittable, error) {
	var objects []geometry.Hittable
	for _, arg := range args {
		var items []zygo.Sexp
		switch v := arg.(type) {
		case *zygo.SexpPair:
			list, err := zygo.ListToArray(v)
			if err != nil {
				return nil, err
			}
			items = list
		case *zygo.SexpArray:
			items = v.Val
		default:
			items = []zygo.Sexp{arg}
		}
		for _, item := range items {
			obj, err := toObject(item)
			if err != nil {
				return nil, err
			}
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

// parsePositional converts args with one parser per position
func parsePositional(fn string, args []zygo.Sexp, names []string, parsers ...func(zygo.Sexp) error) error {
	if len(args) != len(parsers) {
		return fmt.Errorf("%s requires %d arguments (%s), got %d", fn, len(parsers), strings.Join(names, ", "), len(args))
	}
	for i, parse := range parsers {
		if err := parse(args[i]); err != nil {
			return fmt.Errorf("%s: %s: %w", fn, names[i], err)
		}
	}
	return nil
}

func floatArg(dst *float64) func(zygo.Sexp) error {
	return func(s zygo.Sexp) (err error) {
		*dst, err = toFloat64(s)
		return err
	}
}

func vecArg(dst *core.Vec3) func(zygo.Sexp) error {
	return func(s zygo.Sexp) (err error) {
		*dst, err = toVec3(s)
		return err
	}
}

func colorArg(dst *material.ColorSource) func(zygo.Sexp) error {
	return func(s zygo.Sexp) (err error) {
		*dst, err = toColorSource(s)
		return err
	}
}

func materialArg(dst *material.Material) func(zygo.Sexp) error {
	return func(s zygo.Sexp) (err error) {
		*dst, err = toMaterial(s)
		return err
	}
}

func objectArg(dst *geometry.Hittable) func(zygo.Sexp) error {
	return func(s zygo.Sexp) (err error) {
		*dst, err = toObject(s)
		return err
	}
}

// scriptBuilder holds the scene being assembled by a script
type scriptBuilder struct {
	scene   *Scene
	logger  core.Logger
	sampler core.Sampler // randomness for procedural textures
}

func newScriptBuilder(s *Scene, logger core.Logger) *scriptBuilder {
	return &scriptBuilder{
		scene:   s,
		logger:  logger,
		sampler: core.NewSeededSampler(layoutSeed),
	}
}

type builtinFunc func(args []zygo.Sexp) (zygo.Sexp, error)

// registerSceneBuiltins installs the scene vocabulary into env. Source must go
// through preprocessScript first so that keywords and kebab-case names resolve.
func registerSceneBuiltins(env *zygo.Zlisp, b *scriptBuilder) {
	add := func(name string, fn builtinFunc) {
		env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			return fn(args)
		})
	}

	add("vec3", b.vec3)
	add("color", b.vec3)

	add("solid", b.solid)
	add("checker", b.checker)
	add("noise", b.noise)
	add("image", b.image)

	add("lambertian", b.colorMaterial("lambertian", func(c material.ColorSource) material.Material {
		return material.NewTexturedLambertian(c)
	}))
	add("diffuse_light", b.colorMaterial("diffuse-light", func(c material.ColorSource) material.Material {
		return material.NewTexturedDiffuseLight(c)
	}))
	add("isotropic", b.colorMaterial("isotropic", func(c material.ColorSource) material.Material {
		return material.NewTexturedIsotropic(c)
	}))
	add("metal", b.metal)
	add("dielectric", b.dielectric)
	add("empty_material", b.emptyMaterial)

	add("sphere", b.sphere)
	add("moving_sphere", b.movingSphere)
	add("quad", b.quad)
	add("box", b.box)
	add("translate", b.translate)
	add("rotate_y", b.rotateY)
	add("constant_medium", b.constantMedium)
	add("group", b.group)
	add("bvh", b.bvh)

	add("add", b.addObjects)
	add("light", b.addLights)
	add("camera", b.camera)
	add("render", b.render)
	add("background", b.background)
}

// (vec3 x y z)
func (b *scriptBuilder) vec3(args []zygo.Sexp) (zygo.Sexp, error) {
	var x, y, z float64
	if err := parsePositional("vec3", args, []string{"x", "y", "z"}, floatArg(&x), floatArg(&y), floatArg(&z)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpVec3{vec: core.NewVec3(x, y, z)}, nil
}

// (solid color)
func (b *scriptBuilder) solid(args []zygo.Sexp) (zygo.Sexp, error) {
	var c core.Vec3
	if err := parsePositional("solid", args, []string{"color"}, vecArg(&c)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpTexture{kind: "solid", tex: material.NewSolidColor(c)}, nil
}

// (checker scale even odd), where even and odd are colors or textures
func (b *scriptBuilder) checker(args []zygo.Sexp) (zygo.Sexp, error) {
	var scale float64
	var even, odd material.ColorSource
	if err := parsePositional("checker", args, []string{"scale", "even", "odd"}, floatArg(&scale), colorArg(&even), colorArg(&odd)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpTexture{kind: "checker", tex: material.NewCheckerTexture(scale, even, odd)}, nil
}

// (noise scale)
func (b *scriptBuilder) noise(args []zygo.Sexp) (zygo.Sexp, error) {
	var scale float64
	if err := parsePositional("noise", args, []string{"scale"}, floatArg(&scale)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpTexture{kind: "noise", tex: material.NewNoiseTexture(scale, b.sampler)}, nil
}

// (image "path"); unreadable files give the cyan fallback texture
func (b *scriptBuilder) image(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("image requires a path argument")
	}
	path, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("image: path: %w", err)
	}
	return &sexpTexture{kind: "image", tex: loaders.NewImageTextureFromFile(path, b.logger)}, nil
}

// colorMaterial builds a one-argument material constructor taking a color or texture
func (b *scriptBuilder) colorMaterial(kind string, build func(material.ColorSource) material.Material) builtinFunc {
	return func(args []zygo.Sexp) (zygo.Sexp, error) {
		var c material.ColorSource
		if err := parsePositional(kind, args, []string{"color"}, colorArg(&c)); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpMaterial{kind: kind, mat: build(c)}, nil
	}
}

// (metal albedo fuzz)
func (b *scriptBuilder) metal(args []zygo.Sexp) (zygo.Sexp, error) {
	var albedo core.Vec3
	var fuzz float64
	if err := parsePositional("metal", args, []string{"albedo", "fuzz"}, vecArg(&albedo), floatArg(&fuzz)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpMaterial{kind: "metal", mat: material.NewMetal(albedo, fuzz)}, nil
}

// (dielectric refractive-index)
func (b *scriptBuilder) dielectric(args []zygo.Sexp) (zygo.Sexp, error) {
	var ior float64
	if err := parsePositional("dielectric", args, []string{"refractive-index"}, floatArg(&ior)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpMaterial{kind: "dielectric", mat: material.NewDielectric(ior)}, nil
}

// (empty-material)
func (b *scriptBuilder) emptyMaterial(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 0 {
		return zygo.SexpNull, fmt.Errorf("empty-material takes no arguments")
	}
	return &sexpMaterial{kind: "empty", mat: material.NewEmpty()}, nil
}

// (sphere center radius material)
func (b *scriptBuilder) sphere(args []zygo.Sexp) (zygo.Sexp, error) {
	var center core.Vec3
	var radius float64
	var mat material.Material
	if err := parsePositional("sphere", args, []string{"center", "radius", "material"}, vecArg(&center), floatArg(&radius), materialArg(&mat)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpObject{kind: "sphere", obj: geometry.NewSphere(center, radius, mat)}, nil
}

// (moving-sphere center1 center2 radius material)
func (b *scriptBuilder) movingSphere(args []zygo.Sexp) (zygo.Sexp, error) {
	var center1, center2 core.Vec3
	var radius float64
	var mat material.Material
	if err := parsePositional("moving-sphere", args, []string{"center1", "center2", "radius", "material"},
		vecArg(&center1), vecArg(&center2), floatArg(&radius), materialArg(&mat)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpObject{kind: "moving-sphere", obj: geometry.NewMovingSphere(center1, center2, radius, mat)}, nil
}

// (quad corner u v material)
func (b *scriptBuilder) quad(args []zygo.Sexp) (zygo.Sexp, error) {
	var corner, u, v core.Vec3
	var mat material.Material
	if err := parsePositional("quad", args, []string{"corner", "u", "v", "material"},
		vecArg(&corner), vecArg(&u), vecArg(&v), materialArg(&mat)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpObject{kind: "quad", obj: geometry.NewQuad(corner, u, v, mat)}, nil
}

// (box a b material)
func (b *scriptBuilder) box(args []zygo.Sexp) (zygo.Sexp, error) {
	var p0, p1 core.Vec3
	var mat material.Material
	if err := parsePositional("box", args, []string{"a", "b", "material"}, vecArg(&p0), vecArg(&p1), materialArg(&mat)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpObject{kind: "box", obj: geometry.NewBox(p0, p1, mat)}, nil
}

// (translate object offset)
func (b *scriptBuilder) translate(args []zygo.Sexp) (zygo.Sexp, error) {
	var obj geometry.Hittable
	var offset core.Vec3
	if err := parsePositional("translate", args, []string{"object", "offset"}, objectArg(&obj), vecArg(&offset)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpObject{kind: "translate", obj: geometry.NewTranslate(obj, offset)}, nil
}

// (rotate-y object degrees)
func (b *scriptBuilder) rotateY(args []zygo.Sexp) (zygo.Sexp, error) {
	var obj geometry.Hittable
	var degrees float64
	if err := parsePositional("rotate-y", args, []string{"object", "degrees"}, objectArg(&obj), floatArg(&degrees)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpObject{kind: "rotate-y", obj: geometry.NewRotateY(obj, degrees)}, nil
}

// (constant-medium boundary density color)
func (b *scriptBuilder) constantMedium(args []zygo.Sexp) (zygo.Sexp, error) {
	var boundary geometry.Hittable
	var density float64
	var albedo material.ColorSource
	if err := parsePositional("constant-medium", args, []string{"boundary", "density", "color"},
		objectArg(&boundary), floatArg(&density), colorArg(&albedo)); err != nil {
		return zygo.SexpNull, err
	}
	return &sexpObject{kind: "constant-medium", obj: geometry.NewTexturedConstantMedium(boundary, density, albedo)}, nil
}

// (group objects...)
func (b *scriptBuilder) group(args []zygo.Sexp) (zygo.Sexp, error) {
	objects, err := toObjects(args)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("group: %w", err)
	}
	return &sexpObject{kind: "group", obj: geometry.NewList(objects...)}, nil
}

// (bvh objects...)
func (b *scriptBuilder) bvh(args []zygo.Sexp) (zygo.Sexp, error) {
	objects, err := toObjects(args)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("bvh: %w", err)
	}
	return &sexpObject{kind: "bvh", obj: geometry.NewBVH(objects)}, nil
}

// (add objects...) puts objects into the world
func (b *scriptBuilder) addObjects(args []zygo.Sexp) (zygo.Sexp, error) {
	objects, err := toObjects(args)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("add: %w", err)
	}
	b.scene.Add(objects...)
	return zygo.SexpNull, nil
}

// (light objects...) registers objects for importance sampling
func (b *scriptBuilder) addLights(args []zygo.Sexp) (zygo.Sexp, error) {
	objects, err := toObjects(args)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("light: %w", err)
	}
	b.scene.AddLight(objects...)
	return zygo.SexpNull, nil
}

// (camera :look-from v :look-at v :vup v :vfov f :aspect f :width n :defocus-angle f :focus-dist f)
func (b *scriptBuilder) camera(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseScriptArgs(args)
	if len(pa.positional) > 0 {
		return zygo.SexpNull, fmt.Errorf("camera takes only keyword arguments")
	}
	config := &b.scene.CameraConfig

	vectors := map[string]*core.Vec3{
		"look-from": &config.LookFrom,
		"look-at":   &config.LookAt,
		"vup":       &config.VUp,
	}
	floats := map[string]*float64{
		"vfov":          &config.VFov,
		"aspect":        &config.AspectRatio,
		"defocus-angle": &config.DefocusAngle,
		"focus-dist":    &config.FocusDist,
	}

	for key, value := range pa.kw {
		var err error
		if dst, ok := vectors[key]; ok {
			*dst, err = toVec3(value)
		} else if dst, ok := floats[key]; ok {
			*dst, err = toFloat64(value)
		} else if key == "width" {
			config.ImageWidth, err = toInt(value)
		} else {
			err = fmt.Errorf("unknown keyword")
		}
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("camera: %s: %w", key, err)
		}
	}
	return zygo.SexpNull, nil
}

// (render :spp n :depth n :seed n)
func (b *scriptBuilder) render(args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseScriptArgs(args)
	if len(pa.positional) > 0 {
		return zygo.SexpNull, fmt.Errorf("render takes only keyword arguments")
	}
	config := &b.scene.SamplingConfig

	for key, value := range pa.kw {
		n, err := toInt(value)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("render: %s: %w", key, err)
		}
		switch key {
		case "spp":
			config.SamplesPerPixel = n
		case "depth":
			config.MaxDepth = n
		case "seed":
			config.Seed = int64(n)
		default:
			return zygo.SexpNull, fmt.Errorf("render: %s: unknown keyword", key)
		}
	}
	return zygo.SexpNull, nil
}

// (background color)
func (b *scriptBuilder) background(args []zygo.Sexp) (zygo.Sexp, error) {
	var c core.Vec3
	if err := parsePositional("background", args, []string{"color"}, vecArg(&c)); err != nil {
		return zygo.SexpNull, err
	}
	b.scene.Background = c
	return zygo.SexpNull, nil
}
