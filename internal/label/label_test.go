package label

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromFilenameQRule(t *testing.T) {
	cases := []struct {
		stem string
		want string
	}{
		{"Qx", "Qx"},
		{"QUTIL", "QUtil"},
		{"Qswap", "QSwap"},
		{"QVAULT", "QVault"},
		{"Qbay", "QBay"},
		{"qswap", "QSwap"},
		{"Q", "Q"},
		{"", ""},
		{"GeneralQuorumProposal", "General Quorum Proposal"},
		{"MyLastMatch", "My Last Match"},
		{"Random", "Random"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FromFilename(tc.stem), "stem %q", tc.stem)
	}
}

func TestFromIdentifier(t *testing.T) {
	cases := []struct {
		ident string
		want  string
	}{
		{"Foo", "Foo"},
		{"GetStats", "Get Stats"},
		{"transfer_share_ownership", "Transfer Share Ownership"},
		{"TransferShareOwnershipAndPossession", "Transfer Share Ownership and Possession"},
		{"IssueAsset2", "Issue Asset 2"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FromIdentifier(tc.ident), "identifier %q", tc.ident)
	}
}

func TestSplitWords(t *testing.T) {
	require.Equal(t, []string{"get", "user", "2"}, SplitWords("get_user2"))
	require.Equal(t, []string{"Get", "User", "Info"}, SplitWords("GetUserInfo"))
	require.Empty(t, SplitWords("___"))
	require.Equal(t, []string{"a", "b"}, SplitWords("a-b"))
}

func TestTitleCaseMinorWords(t *testing.T) {
	// Interior minor words are lowered, first and last never are.
	require.Equal(t, "Of Mice and Men Of", TitleCase([]string{"of", "Mice", "And", "Men", "of"}))
	// Acronyms longer than one rune survive verbatim.
	require.Equal(t, "Send QU Amount", TitleCase([]string{"Send", "QU", "amount"}))
	require.Equal(t, "", TitleCase(nil))
}
