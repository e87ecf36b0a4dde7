// Package processor orchestrates one generation round. A round runs two
// independent flows sequentially: the per-module flow synthesizes a factory
// for every annotated factory declaration and persists its manifest; the
// cross-module flow reads every manifest visible on the artifact path and
// synthesizes a consolidated dispatcher for every consolidation point.
//
// No flow ever aborts the round for one declaration's problem: failures
// become diagnostics scoped to that declaration and processing continues.
package processor

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fractory-go/fractory/internal/diag"
	"github.com/fractory-go/fractory/internal/emit"
	"github.com/fractory-go/fractory/internal/inspect"
	"github.com/fractory-go/fractory/internal/manifest"
	"github.com/fractory-go/fractory/internal/store"
	"github.com/fractory-go/fractory/internal/strategy"
)

// DefaultSuffix is appended to the lowercased declaration name to form the
// generated file name.
const DefaultSuffix = "_fractory.go"

// Config configures a Processor.
type Config struct {
	Strategies []strategy.Extension
	Store      *store.Store
	Suffix     string
	Logger     *zap.Logger
}

// Summary reports what one round did.
type Summary struct {
	Models      int
	Factories   int
	Dispatchers int
	Warnings    int
	Duration    time.Duration
}

// Processor runs generation rounds.
type Processor struct {
	cfg Config
	log *zap.Logger
}

// New creates a processor. A nil logger disables logging; an empty strategy
// list means the full registry.
func New(cfg Config) *Processor {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = strategy.Registry()
	}
	return &Processor{cfg: cfg, log: cfg.Logger}
}

// Run executes one round over the discovered declarations.
func (p *Processor) Run(res *inspect.Result, rep *diag.Reporter) Summary {
	start := time.Now()

	matched := p.matchModels(res, rep)

	factories := res.Factories()
	for _, site := range factories {
		p.processFactory(site, matched, rep)
	}

	dispatchers := res.Dispatchers()
	if len(dispatchers) > 0 {
		p.aggregate(dispatchers, rep)
	}

	return Summary{
		Models:      len(res.Models),
		Factories:   len(factories),
		Dispatchers: len(dispatchers),
		Warnings:    rep.Warnings(),
		Duration:    time.Since(start),
	}
}

// matchModels runs the capability matcher once per (strategy, model) pair.
// Near-miss warnings are reported here, exactly once.
func (p *Processor) matchModels(res *inspect.Result, rep *diag.Reporter) map[string][]*inspect.ModelDecl {
	for _, m := range res.Models {
		if !m.HasMarker {
			rep.Warningf("discover", diag.WarnMissingMarker, m.Pos,
				"%s does not implement adapter.Model (embed adapter.ModelTag); aggregated dispatchers will not resolve it", m.FQN())
		}
	}

	matched := make(map[string][]*inspect.ModelDecl)
	for _, ext := range p.cfg.Strategies {
		for _, m := range res.Models {
			if ext.IsApplicable(m, rep) {
				matched[ext.ID()] = append(matched[ext.ID()], m)
				p.log.Debug("model matched",
					zap.String("model", m.FQN()),
					zap.String("strategy", ext.ID()))
			}
		}
	}
	return matched
}

func (p *Processor) processFactory(site *inspect.FactorySite, matched map[string][]*inspect.ModelDecl, rep *diag.Reporter) {
	if !site.IsInterface {
		rep.Fatalf("factory", diag.ErrFactoryNotInterface, site.Pos,
			"%s must be declared as an interface", site.FQN())
		return
	}

	var supported []strategy.Extension
	for _, ext := range p.cfg.Strategies {
		if ext.IsTypeSupported(site) {
			supported = append(supported, ext)
		}
	}
	if len(supported) == 0 {
		rep.Fatalf("factory", diag.ErrNoSupportedStrategy, site.Pos,
			"%s does not embed any supported factory interface", site.FQN())
		return
	}

	total := 0
	for _, ext := range supported {
		total += len(matched[ext.ID()])
	}
	if total == 0 {
		rep.Fatalf("factory", diag.ErrNoEligibleModels, site.Pos,
			"no eligible models found for %s", site.FQN())
		return
	}

	w := emit.NewWriter()
	recvName := strategy.GeneratedPrefix + site.Name
	p.emitHeader(w, site, recvName)

	man := manifest.New(site.FQN())
	for _, ext := range supported {
		// A supported strategy with no matched models still gets its
		// method: the generated type must implement the full interface.
		records := ext.SynthesizeModule(w, site, recvName, matched[ext.ID()])
		for fqn, rec := range records {
			man.Put(ext.ID(), fqn, rec)
		}
	}

	if !p.writeSource(w, site, rep) {
		return
	}

	payload, err := manifest.Encode(man)
	if err != nil {
		rep.Fatalf("emit", diag.ErrArtifactWrite, site.Pos,
			"failed to encode manifest for %s: %v", site.FQN(), err)
		return
	}
	if err := p.cfg.Store.Write(site.PkgPath, site.Name, payload); err != nil {
		rep.Fatalf("emit", diag.ErrArtifactWrite, site.Pos, "%v", err)
		return
	}

	p.log.Info("factory generated",
		zap.String("factory", site.FQN()),
		zap.Int("models", total))
}

func (p *Processor) aggregate(sites []*inspect.FactorySite, rep *diag.Reporter) {
	artifacts, err := p.cfg.Store.ReadAll()
	if err != nil {
		rep.Fatalf("aggregate", diag.ErrArtifactRead, diag.Pos{}, "%v", err)
		return
	}
	if len(artifacts) == 0 {
		rep.Warningf("aggregate", diag.WarnNoArtifacts, diag.Pos{},
			"no fractory artifacts found on the artifact path; no dispatcher will be generated")
		return
	}

	var manifests []*manifest.FactoryManifest
	for _, a := range artifacts {
		m, err := manifest.Decode(a.Payload)
		if err != nil {
			rep.Warningf("aggregate", diag.WarnManifestDecode,
				diag.Pos{File: a.Path}, "skipping artifact: %v", err)
			continue
		}
		manifests = append(manifests, m)
	}
	if len(manifests) == 0 {
		rep.Warningf("aggregate", diag.WarnNoArtifacts, diag.Pos{},
			"no readable fractory artifacts on the artifact path; no dispatcher will be generated")
		return
	}

	// Manifests arrive in the store's documented enumeration order; Merge
	// resolves duplicate model registrations last-write-wins against it.
	merged := manifest.Merge(manifests)
	p.log.Info("aggregated artifacts", zap.Int("manifests", len(manifests)))

	for _, site := range sites {
		p.processDispatcher(site, merged, rep)
	}
}

func (p *Processor) processDispatcher(site *inspect.FactorySite, merged *manifest.Merged, rep *diag.Reporter) {
	if !site.IsInterface {
		rep.Fatalf("aggregate", diag.ErrDispatcherNotInterface, site.Pos,
			"%s must be declared as an interface", site.FQN())
		return
	}

	w := emit.NewWriter()
	recvName := strategy.GeneratedPrefix + site.Name
	p.emitHeader(w, site, recvName)

	emitted := 0
	for _, ext := range p.cfg.Strategies {
		if !ext.IsTypeSupported(site) {
			continue
		}
		ext.SynthesizeDispatch(w, site, recvName, merged.PerStrategy[ext.ID()])
		emitted++
	}
	if emitted == 0 {
		rep.Fatalf("aggregate", diag.ErrNoDispatchMethods, site.Pos,
			"%s does not embed any supported factory interface", site.FQN())
		return
	}

	if p.writeSource(w, site, rep) {
		p.log.Info("dispatcher generated", zap.String("dispatcher", site.FQN()))
	}
}

func (p *Processor) emitHeader(w *emit.Writer, site *inspect.FactorySite, recvName string) {
	w.Line("// %s implements %s.", recvName, site.Name)
	w.Line("type %s struct{}", recvName)
	w.Line("")
	w.Line("// New%s returns the generated implementation of %s.", site.Name, site.Name)
	w.Line("func New%s() %s {", site.Name, site.Name)
	w.In()
	w.Line("return %s{}", recvName)
	w.Out()
	w.Line("}")
	w.Line("")
}

func (p *Processor) writeSource(w *emit.Writer, site *inspect.FactorySite, rep *diag.Reporter) bool {
	src, err := w.File(site.PkgName)
	if err != nil {
		rep.Fatalf("emit", diag.ErrSourceFormat, site.Pos, "%v", err)
		return false
	}

	path := filepath.Join(site.Dir, strings.ToLower(site.Name)+p.cfg.Suffix)
	if err := os.WriteFile(path, src, 0o644); err != nil {
		rep.Fatalf("emit", diag.ErrSourceWrite, site.Pos, "failed to write %s: %v", path, err)
		return false
	}

	p.log.Info("wrote generated source", zap.String("path", path))
	return true
}
