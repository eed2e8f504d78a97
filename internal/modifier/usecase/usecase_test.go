package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/storage/memstore"
	"github.com/fekuna/omnipos-catalog-service/internal/validate"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const merchant = "m-1"

func newUseCase(t *testing.T) (modifier.UseCase, *memstore.Store, *event.Recorder) {
	t.Helper()
	store := memstore.New()
	events := &event.Recorder{}
	uc := NewModifierUseCase(
		repository.NewMemoryRepository(store),
		nil,
		events,
		validate.Languages{Primary: "pt", Supported: []string{"pt", "en", "es"}},
		logger.NewNop(),
	)
	return uc, store, events
}

func option(name string, price int64) model.ModifierOption {
	return model.ModifierOption{Name: model.Text("pt", name), Price: decimal.NewFromInt(price)}
}

func validInput(name string) *dto.ModifierGroupInput {
	return &dto.ModifierGroupInput{
		MerchantID:   merchant,
		Name:         model.Text("pt", name),
		MinSelection: 1,
		MaxSelection: 1,
		Options:      []model.ModifierOption{option("Pequeno", 0), option("Grande", 3)},
	}
}

func TestCreateModifierGroup(t *testing.T) {
	uc, _, events := newUseCase(t)

	group, err := uc.CreateModifierGroup(context.Background(), validInput("Tamanho"))
	require.NoError(t, err)
	assert.NotEmpty(t, group.ID)
	assert.Len(t, group.Options, 2)
	assert.Equal(t, []event.Type{event.ModifierGroupCreated}, events.Types())
}

func TestCreateModifierGroup_Validation(t *testing.T) {
	uc, _, _ := newUseCase(t)

	tests := []struct {
		name   string
		mutate func(*dto.ModifierGroupInput)
	}{
		{name: "min greater than max", mutate: func(in *dto.ModifierGroupInput) { in.MinSelection, in.MaxSelection = 2, 1 }},
		{name: "negative min", mutate: func(in *dto.ModifierGroupInput) { in.MinSelection = -1 }},
		{name: "no options", mutate: func(in *dto.ModifierGroupInput) { in.Options = nil }},
		{name: "missing name", mutate: func(in *dto.ModifierGroupInput) { in.Name = model.Text("en", "Size") }},
		{name: "option without primary name", mutate: func(in *dto.ModifierGroupInput) { in.Options[0].Name = model.LocalizedText{} }},
		{name: "negative option price", mutate: func(in *dto.ModifierGroupInput) { in.Options[1].Price = decimal.NewFromInt(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("Tamanho")
			tt.mutate(in)
			_, err := uc.CreateModifierGroup(context.Background(), in)
			assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput), "got %v", err)
		})
	}
}

func TestCreateModifierGroup_MaxAboveOptionCountIsAllowed(t *testing.T) {
	uc, _, _ := newUseCase(t)
	in := validInput("Adicionais")
	in.MinSelection, in.MaxSelection = 0, 5

	_, err := uc.CreateModifierGroup(context.Background(), in)
	assert.NoError(t, err)
}

func TestListModifierGroups_OrderedByPrimaryName(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	for _, name := range []string{"molhos", "Bebida", "adicionais"} {
		_, err := uc.CreateModifierGroup(ctx, validInput(name))
		require.NoError(t, err)
	}

	groups, err := uc.ListModifierGroups(ctx, merchant)
	require.NoError(t, err)
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name.Resolve("pt", "pt")
	}
	assert.Equal(t, []string{"adicionais", "Bebida", "molhos"}, names)

	other, err := uc.ListModifierGroups(ctx, "m-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestUpdateModifierGroup(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	group, err := uc.CreateModifierGroup(ctx, validInput("Tamanho"))
	require.NoError(t, err)

	in := validInput("Tamanho")
	in.MaxSelection = 2
	in.Options = append(in.Options, option("Família", 8))
	updated, err := uc.UpdateModifierGroup(ctx, &dto.UpdateModifierGroupInput{ID: group.ID, ModifierGroupInput: *in})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.MaxSelection)
	assert.Len(t, updated.Options, 3)

	_, err = uc.UpdateModifierGroup(ctx, &dto.UpdateModifierGroupInput{ID: "missing", ModifierGroupInput: *in})
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}

func TestDeleteModifierGroup_DetachesFromProducts(t *testing.T) {
	uc, store, events := newUseCase(t)
	ctx := context.Background()
	size, err := uc.CreateModifierGroup(ctx, validInput("Tamanho"))
	require.NoError(t, err)
	sauce, err := uc.CreateModifierGroup(ctx, validInput("Molho"))
	require.NoError(t, err)

	require.NoError(t, store.Write(func(tx *memstore.Tx) error {
		tx.Products["p-1"] = model.Product{BaseModel: model.BaseModel{ID: "p-1"}, MerchantID: merchant, ModifierGroupIDs: []string{size.ID, sauce.ID}}
		tx.Products["p-2"] = model.Product{BaseModel: model.BaseModel{ID: "p-2"}, MerchantID: merchant, ModifierGroupIDs: []string{sauce.ID}}
		tx.Products["p-3"] = model.Product{BaseModel: model.BaseModel{ID: "p-3"}, MerchantID: merchant}
		return nil
	}))

	detached, err := uc.DeleteModifierGroup(ctx, merchant, sauce.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detached)

	require.NoError(t, store.Read(func(tx *memstore.Tx) error {
		assert.Equal(t, []string{size.ID}, tx.Products["p-1"].ModifierGroupIDs)
		assert.Empty(t, tx.Products["p-2"].ModifierGroupIDs)
		return nil
	}))
	assert.Equal(t, event.ModifierGroupDeleted, events.Types()[len(events.Types())-1])

	_, err = uc.DeleteModifierGroup(ctx, merchant, sauce.ID)
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}
