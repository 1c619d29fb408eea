package dialog

import "testing"

func TestFAQCategoriesComplete(t *testing.T) {
	for id, category := range FAQCategories {
		if category.ID != id {
			t.Errorf("category %q has mismatched ID %q", id, category.ID)
		}
		if category.Label == "" {
			t.Errorf("category %q has no label", id)
		}
		if len(category.Questions) == 0 {
			t.Errorf("category %q has no questions", id)
		}
		seen := map[string]bool{}
		for _, q := range category.Questions {
			if q.ID == "" || q.Question == "" || q.Answer == "" {
				t.Errorf("category %q has an incomplete question: %+v", id, q.ID)
			}
			if seen[q.ID] {
				t.Errorf("category %q repeats question id %q", id, q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestTopLevelMenuRoutes(t *testing.T) {
	values := map[string]bool{}
	for _, b := range TopLevelMenu {
		if b.Label == "" || b.Value == "" {
			t.Errorf("menu button %+v is incomplete", b)
		}
		if values[b.Value] {
			t.Errorf("menu value %q appears twice", b.Value)
		}
		values[b.Value] = true
	}

	// Every intake entry point and the escalation shortcuts must be present.
	for _, v := range []string{
		"start_patient_intake", "start_accreditation_intake", "start_staffing_intake",
		"contact_me", "something_else",
	} {
		if !values[v] {
			t.Errorf("menu is missing %q", v)
		}
	}
	// Every routable category has a menu entry with its category content.
	for id := range categoryNames {
		if !values[id] {
			t.Errorf("menu is missing category %q", id)
		}
		if _, ok := FAQCategories[id]; !ok {
			t.Errorf("routable category %q has no FAQ content", id)
		}
	}
}

func TestCategoryButtons(t *testing.T) {
	buttons := CategoryButtons("therapy_rehab")
	if len(buttons) == 0 {
		t.Fatal("therapy_rehab should have question buttons")
	}
	for _, b := range buttons {
		if _, ok := FAQAnswer("therapy_rehab", b.Value); !ok {
			t.Errorf("button %q does not resolve to an answer", b.Value)
		}
	}

	if got := CategoryButtons("no_such_category"); got != nil {
		t.Errorf("unknown category should return nil, got %v", got)
	}
}

func TestFAQAnswerLookup(t *testing.T) {
	q, ok := FAQAnswer("business", "chap_accreditation")
	if !ok {
		t.Fatal("known question should resolve")
	}
	if q.Answer == "" {
		t.Error("answer text is empty")
	}

	if _, ok := FAQAnswer("business", "nope"); ok {
		t.Error("unknown question should not resolve")
	}
	if _, ok := FAQAnswer("nope", "chap_accreditation"); ok {
		t.Error("unknown category should not resolve")
	}
}
