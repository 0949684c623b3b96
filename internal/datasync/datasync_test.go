package datasync

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_review "github.com/at-ishikawa/shokyuu/internal/mocks/review"
	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

var (
	ame  = vocabulary.Entry{Source: "あめ", Transliteration: "ame", Translation: "rain"}
	kaze = vocabulary.Entry{Source: "かぜ", Transliteration: "kaze", Translation: "wind"}
	yuki = vocabulary.Entry{Source: "ゆき", Transliteration: "yuki", Translation: "snow"}
)

func TestSyncer_Sync(t *testing.T) {
	tests := []struct {
		name       string
		opts       SyncOptions
		setup      func(source, target *mock_review.MockStore)
		want       *SyncResult
		wantOutput []string
		wantErr    string
	}{
		{
			name: "new lesson and new entries are saved to the target",
			setup: func(source, target *mock_review.MockStore) {
				source.EXPECT().Load(gomock.Any()).Return(review.Decks{
					"unit-1": {ame, kaze},
					"unit-2": {yuki},
				}, nil)
				target.EXPECT().Load(gomock.Any()).Return(review.Decks{
					"unit-1": {kaze},
					"unit-3": {ame},
				}, nil)
				target.EXPECT().Save(gomock.Any(), review.Decks{
					"unit-1": {kaze, ame},
					"unit-2": {yuki},
					"unit-3": {ame},
				}).Return(nil)
			},
			want: &SyncResult{LessonsNew: 1, EntriesNew: 2, EntriesSkipped: 1},
			wantOutput: []string{
				"  [NEW]  unit-1: \"あめ\" (rain)",
				"  [SKIP]  unit-1: \"かぜ\" (wind)",
				"  [NEW]  unit-2: \"ゆき\" (snow)",
			},
		},
		{
			name: "dry run does not save",
			opts: SyncOptions{DryRun: true},
			setup: func(source, target *mock_review.MockStore) {
				source.EXPECT().Load(gomock.Any()).Return(review.Decks{"unit-1": {ame}}, nil)
				target.EXPECT().Load(gomock.Any()).Return(review.Decks{}, nil)
			},
			want:       &SyncResult{LessonsNew: 1, EntriesNew: 1},
			wantOutput: []string{"  [NEW]  unit-1: \"あめ\" (rain)"},
		},
		{
			name: "nothing new does not save",
			setup: func(source, target *mock_review.MockStore) {
				source.EXPECT().Load(gomock.Any()).Return(review.Decks{"unit-1": {ame}}, nil)
				target.EXPECT().Load(gomock.Any()).Return(review.Decks{"unit-1": {ame}}, nil)
			},
			want: &SyncResult{EntriesSkipped: 1},
		},
		{
			name: "source load failure",
			setup: func(source, target *mock_review.MockStore) {
				source.EXPECT().Load(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: "source.Load() > connection refused",
		},
		{
			name: "target save failure",
			setup: func(source, target *mock_review.MockStore) {
				source.EXPECT().Load(gomock.Any()).Return(review.Decks{"unit-1": {ame}}, nil)
				target.EXPECT().Load(gomock.Any()).Return(review.Decks{}, nil)
				target.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: "target.Save() > disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mock_review.NewMockStore(ctrl)
			target := mock_review.NewMockStore(ctrl)
			tt.setup(source, target)

			var out bytes.Buffer
			got, err := NewSyncer(source, target, &out).Sync(context.Background(), tt.opts)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, line := range tt.wantOutput {
				assert.Contains(t, out.String(), line)
			}
		})
	}
}
