package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xavierca1/formapro-console/internal/state/form"
)

func newBooking() *form.State {
	return form.New(form.Values{
		"nom":    "",
		"email":  "",
		"duree":  30,
		"client": map[string]any{"nom": "Martin"},
	}, map[string]form.Validator{
		"nom":   form.Required("Le nom est requis"),
		"email": form.All(form.Required("L'email est requis"), form.Email("Email invalide")),
		"duree": form.MinInt(15, "Durée minimale 15 minutes"),
	})
}

func TestUpdateFieldRunsValidatorImmediately(t *testing.T) {
	f := newBooking()
	assert.False(t, f.IsDirty())

	f.UpdateField("email", "pas-un-email")
	assert.True(t, f.IsDirty())
	assert.Equal(t, "Email invalide", f.Error("email"))

	f.UpdateField("email", "lea@exemple.fr")
	assert.Empty(t, f.Error("email"))

	// no validator registered: value stored, no error
	f.UpdateField("notes", "appeler avant")
	assert.Equal(t, "appeler avant", f.Value("notes"))
	assert.Empty(t, f.Errors())
}

func TestValidateFormReportsEveryFailure(t *testing.T) {
	f := newBooking()
	f.UpdateField("duree", 5)

	ok := f.ValidateForm()
	assert.False(t, ok)
	assert.Equal(t, []string{"duree", "email", "nom"}, f.ErrorFields())
	assert.Equal(t, "L'email est requis", f.Error("email"))

	f.UpdateField("nom", "Durand")
	f.UpdateField("email", "paul@exemple.fr")
	f.UpdateField("duree", 45)
	assert.True(t, f.ValidateForm())
	assert.Empty(t, f.Errors())
}

func TestUpdateNestedFieldMergesOneLevel(t *testing.T) {
	f := newBooking()
	f.UpdateNestedField("client", "email", "m@exemple.fr")
	assert.Equal(t, map[string]any{"nom": "Martin", "email": "m@exemple.fr"}, f.Value("client"))

	f.UpdateNestedField("adresse", "ville", "Lyon")
	assert.Equal(t, map[string]any{"ville": "Lyon"}, f.Value("adresse"))

	// the returned snapshot is detached from the form
	v := f.Values()
	v["client"].(map[string]any)["nom"] = "Autre"
	assert.Equal(t, "Martin", f.Value("client").(map[string]any)["nom"])
}

func TestArrayFieldMutations(t *testing.T) {
	f := form.New(nil, nil)

	f.AddToArray("modules", "Accueil")
	f.AddToArray("modules", "Bilan")
	assert.Equal(t, []any{"Accueil", "Bilan"}, f.Value("modules"))

	f.UpdateArrayField("modules", 3, "Synthèse")
	assert.Equal(t, []any{"Accueil", "Bilan", nil, "Synthèse"}, f.Value("modules"))

	f.UpdateArrayField("modules", 0, "Ouverture")
	f.RemoveFromArray("modules", 2)
	assert.Equal(t, []any{"Ouverture", "Bilan", "Synthèse"}, f.Value("modules"))

	f.RemoveFromArray("modules", 10)
	f.RemoveFromArray("modules", -1)
	f.UpdateArrayField("modules", -1, "x")
	assert.Equal(t, []any{"Ouverture", "Bilan", "Synthèse"}, f.Value("modules"))
}

func TestUpdateArrayFieldIgnoresFarIndexes(t *testing.T) {
	f := form.New(form.Values{"tags": []any{"a"}}, nil)

	assert.NotPanics(t, func() { f.UpdateArrayField("tags", 1<<62, "x") })
	assert.NotPanics(t, func() { f.UpdateArrayField("tags", 1_000_002, "x") })
	assert.Equal(t, []any{"a"}, f.Value("tags"))
	assert.False(t, f.IsDirty())

	// growth right at the cap still works
	f.UpdateArrayField("tags", 1001, "y")
	arr := f.Value("tags").([]any)
	assert.Len(t, arr, 1002)
	assert.Equal(t, "y", arr[1001])
}

func TestMinIntRejectsFractionalNumbers(t *testing.T) {
	atLeast15 := form.MinInt(15, "Durée minimale 15 minutes")

	assert.Empty(t, atLeast15(45.0))
	assert.Empty(t, atLeast15(45))
	assert.Equal(t, "Durée minimale 15 minutes", atLeast15(45.5))
	assert.Equal(t, "Durée minimale 15 minutes", atLeast15(14.0))
}

func TestResetForm(t *testing.T) {
	f := newBooking()
	f.UpdateField("nom", "")
	require.NotEmpty(t, f.Errors())

	f.ResetForm()
	assert.False(t, f.IsDirty())
	assert.Empty(t, f.Errors())
	assert.Equal(t, "", f.Value("nom"))

	f.ResetForm(form.Values{"nom": "Zola"})
	assert.Equal(t, "Zola", f.Value("nom"))
	assert.Nil(t, f.Value("duree"))

	f.UpdateField("nom", "Hugo")
	f.ResetForm()
	assert.Equal(t, "Zola", f.Value("nom"), "the last seed becomes the reset target")
}

func TestSetValidator(t *testing.T) {
	f := newBooking()
	f.UpdateField("nom", "")
	require.NotEmpty(t, f.Error("nom"))

	f.SetValidator("nom", nil)
	assert.Empty(t, f.Error("nom"))

	f.SetValidator("type", form.OneOf("Type invalide", "information", "suivi"))
	f.UpdateField("type", "autre")
	assert.Equal(t, "Type invalide", f.Error("type"))
}

func TestValidateFormEvaluatesAllRulesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "fields")
		validators := map[string]form.Validator{}
		values := form.Values{}
		failing := 0
		for i := 0; i < n; i++ {
			name := string(rune('a' + i))
			values[name] = rapid.IntRange(0, 10).Draw(t, "value")
			validators[name] = form.MinInt(5, "trop petit")
			if values[name].(int) < 5 {
				failing++
			}
		}
		f := form.New(values, validators)
		ok := f.ValidateForm()
		if ok != (failing == 0) {
			t.Fatalf("ValidateForm=%v with %d failing fields", ok, failing)
		}
		if got := len(f.Errors()); got != failing {
			t.Fatalf("expected %d errors, got %d", failing, got)
		}
	})
}
