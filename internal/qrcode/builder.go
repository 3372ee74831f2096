package qrcode

import (
	"errors"

	"github.com/nayuki/qrcodegen"
	"github.com/nayuki/qrcodegen/qrcodeecc"

	"qr-service/internal/core/domain"
)

// Matrix is a square QR module grid; true means dark.
type Matrix struct {
	Size int32
	get  func(x, y int32) bool
}

func (m Matrix) At(x, y int32) bool {
	return m.get(x, y)
}

var eccByLetter = map[string]qrcodeecc.QrCodeEcc{
	"L": qrcodeecc.Low,
	"M": qrcodeecc.Medium,
	"Q": qrcodeecc.Quartile,
	"H": qrcodeecc.High,
}

// Build computes the QR module matrix for data at the given error
// correction letter (L/M/Q/H), picking the smallest fitting version with
// automatic segment-mode selection, as nayuki/qrcodegen.EncodeText does.
func Build(data string, ec string) (Matrix, error) {
	level, ok := eccByLetter[ec]
	if !ok {
		return Matrix{}, domain.NewValidationError(domain.KindBadEC, "unknown error correction level")
	}

	qr, err := qrcodegen.EncodeText(data, level)
	if err != nil {
		if errors.Is(err, qrcodegen.ErrDataTooLong) {
			return Matrix{}, domain.NewValidationError(domain.KindPayloadTooLarge, "data does not fit any QR version at the requested error correction level")
		}
		return Matrix{}, domain.NewInternalError(err.Error())
	}

	return Matrix{
		Size: qr.Size(),
		get:  qr.GetModule,
	}, nil
}
