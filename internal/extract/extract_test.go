package extract

import (
	"testing"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "direct mentions",
			text: "We use Python, Docker and Airflow daily.",
			want: []string{"Python", "Docker", "Airflow"},
		},
		{
			name: "aws via synonyms",
			text: "Experience with S3 and EC2 required",
			want: []string{"AWS"},
		},
		{
			name: "set semantics for multiple synonym hits",
			text: "aws, amazon web services, lambda, redshift",
			want: []string{"AWS"},
		},
		{
			name: "case insensitive",
			text: "KUBERNETES and TENSORFLOW",
			want: []string{"Kubernetes", "TensorFlow"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "no hits",
			text: "forklift operator needed",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keywords(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Keywords() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Keywords()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKeywordsDeterministicOrder(t *testing.T) {
	text := "Docker then AWS then Python, in prose order"
	a := Keywords(text)
	b := Keywords(text)
	if len(a) != len(b) {
		t.Fatal("non-deterministic result length")
	}
	// vocabulary order, not prose order
	if a[0] != "Python" || a[1] != "AWS" || a[2] != "Docker" {
		t.Errorf("expected vocabulary order, got %v", a)
	}
}

func TestHas(t *testing.T) {
	ks := []string{"Python", "AWS"}
	if !Has(ks, "aws") {
		t.Error("Has should match case-insensitively")
	}
	if Has(ks, "Docker") {
		t.Error("Has matched absent skill")
	}
}
