package di

import (
	"hotel/config"
	"hotel/internal/domains/booking/receipt"
	"hotel/permissions"
	"os"

	"github.com/rs/zerolog/log"
)

func provideReceiptRenderer(cfg *config.Config) receipt.Renderer {
	paths := cfg.App.Receipt
	if paths.FontRegular == "" {
		return receipt.New(cfg.App.HotelName)
	}

	font, err := loadReceiptFont(paths.FontRegular, paths.FontBold, paths.FontItalic)
	if err != nil {
		log.Warn().Err(err).Msg("Receipt font unavailable, falling back to Helvetica.")

		return receipt.New(cfg.App.HotelName)
	}

	return receipt.New(cfg.App.HotelName, receipt.WithUTF8Font(font))
}

// loadReceiptFont reads the TrueType files. Empty bold or italic paths reuse the regular face.
func loadReceiptFont(regular, bold, italic string) (receipt.Font, error) {
	var font receipt.Font

	for _, face := range []struct {
		path string
		dst  *[]byte
	}{{regular, &font.Regular}, {bold, &font.Bold}, {italic, &font.Italic}} {
		if face.path == "" {
			continue
		}

		data, err := os.ReadFile(face.path)
		if err != nil {
			return receipt.Font{}, err
		}

		*face.dst = data
	}

	return font, nil
}

func providePermissions() *permissions.PermissionData {
	return permissions.Get()
}
