package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/stock"
)

func batchWith(locationID, state string, sizeID, packagingID *string) *entity.StockBatch {
	return &entity.StockBatch{
		ID:                 "batch-" + locationID + "-" + state,
		ProductID:          "prod-1",
		StorageLocationID:  locationID,
		ProductState:       state,
		ProductSizeID:      sizeID,
		PackagingCatalogID: packagingID,
	}
}

func strPtr(s string) *string { return &s }

// Tabla de decisión completa del clasificador.
func TestClassify_TablaDeDecision(t *testing.T) {
	sizeM := strPtr("size-m")
	bolsa := strPtr("pack-bolsa")

	cases := []struct {
		name    string
		source  *entity.StockBatch
		dest    *entity.StockBatch
		want    string
		wantErr error
	}{
		{
			name:   "distinta ubicación + misma config = MOVIMIENTO",
			source: batchWith("loc-a", "CRECIMIENTO", sizeM, bolsa),
			dest:   batchWith("loc-b", "CRECIMIENTO", sizeM, bolsa),
			want:   entity.MovementTypeMOVIMIENTO,
		},
		{
			name:   "distinta ubicación + distinta config = MOVIMIENTO_TRASPLANTE",
			source: batchWith("loc-a", "CRECIMIENTO", sizeM, bolsa),
			dest:   batchWith("loc-b", "LISTO", sizeM, bolsa),
			want:   entity.MovementTypeMOVIMIENTOTRASPLANTE,
		},
		{
			name:   "misma ubicación + distinta config = TRASPLANTE",
			source: batchWith("loc-a", "CRECIMIENTO", sizeM, bolsa),
			dest:   batchWith("loc-a", "CRECIMIENTO", strPtr("size-l"), bolsa),
			want:   entity.MovementTypeTRASPLANTE,
		},
		{
			name:    "misma ubicación + misma config = rechazado",
			source:  batchWith("loc-a", "CRECIMIENTO", sizeM, bolsa),
			dest:    batchWith("loc-a", "CRECIMIENTO", sizeM, bolsa),
			wantErr: domain.ErrSameBatchConfig,
		},
		{
			name:   "empaque nil en ambos cuenta como igual",
			source: batchWith("loc-a", "CRECIMIENTO", sizeM, nil),
			dest:   batchWith("loc-b", "CRECIMIENTO", sizeM, nil),
			want:   entity.MovementTypeMOVIMIENTO,
		},
		{
			name:   "empaque nil contra empaque definido cuenta como distinto",
			source: batchWith("loc-a", "CRECIMIENTO", sizeM, nil),
			dest:   batchWith("loc-a", "CRECIMIENTO", sizeM, bolsa),
			want:   entity.MovementTypeTRASPLANTE,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := stock.Classify(tc.source, tc.dest)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify_ProductosDistintosRechazado(t *testing.T) {
	source := batchWith("loc-a", "CRECIMIENTO", nil, nil)
	dest := batchWith("loc-b", "CRECIMIENTO", nil, nil)
	dest.ProductID = "prod-2"

	_, err := stock.Classify(source, dest)
	assert.ErrorIs(t, err, domain.ErrDifferentProduct)
}

// Misma entrada, mismo resultado: el clasificador no guarda estado.
func TestClassify_EsDeterminista(t *testing.T) {
	source := batchWith("loc-a", "CRECIMIENTO", strPtr("size-m"), nil)
	dest := batchWith("loc-b", "LISTO", strPtr("size-m"), nil)

	first, err := stock.Classify(source, dest)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := stock.Classify(source, dest)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
