package viewer

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/assets"
	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/character"
	"github.com/Faultbox/toonrig/internal/engine/scene"
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/internal/logger"
)

// Stage owns the loaded character and the textures uploaded for it. It needs
// a current GL context.
type Stage struct {
	Character *character.Character

	gradients *toon.GradientCache
	images    *assets.Images
	textures  []texture.Handle

	log *zap.Logger
}

// NewStage creates an empty stage.
func NewStage(cfg *config.Config) *Stage {
	gradients := toon.NewGradientCache(uploadGradient, texture.Delete)
	return &Stage{
		Character: character.New(cfg, gradients),
		gradients: gradients,
		images:    assets.NewImages(),
		log:       logger.Named("stage"),
	}
}

func uploadGradient(g *toon.Gradient) texture.Handle {
	return texture.Upload(g.Image(), texture.Options{Nearest: true, Clamp: true})
}

func uploadMap(img image.Image) texture.Handle {
	return texture.Upload(img, texture.Options{})
}

// Load builds the demo character, uploads its textures, binds the rig and
// converts its materials. Calling it again replaces the character.
func (s *Stage) Load() character.Stats {
	if old := s.Character.Graph(); old != nil {
		disposeMaterials(old)
	}
	s.releaseTextures()

	g := assets.BuildCharacter()
	s.textures = assets.AttachTextures(g, s.images, uploadMap)

	stats := s.Character.Discover(g)
	converted := s.Character.ConvertMaterials()

	hits, misses := s.images.Stats()
	s.log.Info("character loaded",
		zap.Int("nodes", g.Len()),
		zap.Int("springBones", stats.SpringBones),
		zap.Int("materials", converted),
		zap.Int("textures", len(s.textures)),
		zap.Int("imageHits", hits),
		zap.Int("imageMisses", misses),
	)
	return stats
}

// disposeMaterials disposes every material of g once, so the renderer can
// drop their programs.
func disposeMaterials(g *scene.Graph) {
	seen := make(map[scene.Material]bool)
	g.Walk(func(_ scene.Handle, n *scene.Node) {
		for _, m := range n.Materials {
			if !seen[m] {
				seen[m] = true
				m.Dispose()
			}
		}
	})
}

func (s *Stage) releaseTextures() {
	for _, h := range s.textures {
		texture.Delete(h)
	}
	s.textures = nil
}

// Close disposes the character and releases every texture.
func (s *Stage) Close() {
	if g := s.Character.Graph(); g != nil {
		disposeMaterials(g)
	}
	s.Character.Close()
	s.releaseTextures()
	s.gradients.Close()
}
