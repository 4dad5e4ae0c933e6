package backend

import (
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/goku"
)

// TextureLoader loads image files as *ebiten.Image textures.
func TextureLoader() goku.TextureLoader {
	return goku.TextureLoaderFunc(func(path string) (goku.Texture, error) {
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			return nil, err
		}
		return img, nil
	})
}
