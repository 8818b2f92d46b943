package tests

import (
	"encoding/json"
	"math/big"
	"path"
	"testing"

	"github.com/dorucioclea/middleman-nft/contracts/middleman/offerstatus"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	middlemanPath = "../contracts/middleman"
	nftPath       = "nft"
	upgradePath   = "upgrade"
)

func deployMiddlemanContract(t *testing.T, e *neotest.Executor, owner util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, middlemanPath, path.Join(middlemanPath, "config.yml"))
	e.DeployContract(t, c, []any{owner})
	return c.Hash
}

func deployNFTContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, nftPath, path.Join(nftPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

func fundGAS(t *testing.T, e *neotest.Executor, to util.Uint160, amount int64) {
	gasHash, err := e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	vc := e.CommitteeInvoker(gasHash).WithSigners(e.Validator)
	vc.Invoke(t, true, "transfer", e.Validator.ScriptHash(), to, amount, nil)
}

func gasBalance(e *neotest.Executor, acc util.Uint160) *big.Int {
	return e.Chain.GetUtilityTokenBalance(acc)
}

type marketEnv struct {
	executor *neotest.Executor
	hash     util.Uint160
	nftHash  util.Uint160
	holder   neotest.Signer
	spender  neotest.Signer
}

func newMarketEnv(t *testing.T) *marketEnv {
	e := newExecutor(t)
	h := deployMiddlemanContract(t, e, e.CommitteeHash)
	nftHash := deployNFTContract(t, e)

	// notification transfers are paid from the contract account
	fundGAS(t, e, h, 10_0000_0000)

	return &marketEnv{
		executor: e,
		hash:     h,
		nftHash:  nftHash,
		holder:   e.NewAccount(t),
		spender:  e.NewAccount(t),
	}
}

func (env *marketEnv) mintItem(t *testing.T, owner neotest.Signer, token []byte) {
	inv := env.executor.NewInvoker(env.nftHash, owner)
	inv.Invoke(t, stackitem.Null{}, "mint", owner.ScriptHash(), token)
}

// createOffer creates an offer from env.holder to env.spender and checks the
// returned identifier.
func (env *marketEnv) createOffer(t *testing.T, id int64, token []byte, amount int64) {
	inv := env.executor.NewInvoker(env.hash, env.holder)
	inv.Invoke(t, stackitem.Make(id), "createOffer",
		env.holder.ScriptHash(), env.nftHash, token, env.spender.ScriptHash(), amount)
}

func (env *marketEnv) requireItemOwner(t *testing.T, token []byte, owner util.Uint160) {
	inv := env.executor.CommitteeInvoker(env.nftHash)
	inv.Invoke(t, stackitem.NewBuffer(owner.BytesBE()), "ownerOf", token)
}

type offerState struct {
	id      int64
	holder  util.Uint160
	spender util.Uint160
	amount  int64
	asset   util.Uint160
	item    []byte
	status  offerstatus.Type
}

func parseOffer(t *testing.T, itm stackitem.Item) offerState {
	fields, ok := itm.Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, fields, 7)

	var (
		o   offerState
		err error
	)
	o.id = toInt64(t, fields[0])
	o.holder = toUint160(t, fields[1])
	o.spender = toUint160(t, fields[2])
	o.amount = toInt64(t, fields[3])
	o.asset = toUint160(t, fields[4])
	o.item, err = fields[5].TryBytes()
	require.NoError(t, err)
	o.status = offerstatus.Type(toInt64(t, fields[6]))

	return o
}

func toInt64(t *testing.T, itm stackitem.Item) int64 {
	i, err := itm.TryInteger()
	require.NoError(t, err)
	return i.Int64()
}

func toUint160(t *testing.T, itm stackitem.Item) util.Uint160 {
	b, err := itm.TryBytes()
	require.NoError(t, err)

	u, err := util.Uint160DecodeBytesBE(b)
	require.NoError(t, err)
	return u
}

func (env *marketEnv) getOffer(t *testing.T, id int64) offerState {
	inv := env.executor.CommitteeInvoker(env.hash)
	res, err := inv.TestInvoke(t, "getOffer", id)
	require.NoError(t, err)

	return parseOffer(t, res.Pop().Item())
}

func idList(ids ...int64) stackitem.Item {
	arr := make([]stackitem.Item, 0, len(ids))
	for _, id := range ids {
		arr = append(arr, stackitem.Make(id))
	}
	return stackitem.NewArray(arr)
}

func TestDeploy_CounterStartsFromOne(t *testing.T) {
	e := newExecutor(t)
	h := deployMiddlemanContract(t, e, e.CommitteeHash)

	e.CommitteeInvoker(h).Invoke(t, stackitem.Make(1), "getOffersCount")
}

func TestUpdate(t *testing.T) {
	e := newExecutor(t)
	h := deployMiddlemanContract(t, e, e.CommitteeHash)

	c := neotest.CompileFile(t, e.CommitteeHash, middlemanPath, path.Join(middlemanPath, "config.yml"))
	script, err := c.NEF.Bytes()
	require.NoError(t, err)
	manifestBytes, err := json.Marshal(c.Manifest)
	require.NoError(t, err)

	acc := e.NewAccount(t)
	e.NewInvoker(h, acc).InvokeFail(t, "only committee can update contract",
		"update", script, manifestBytes, nil)
	e.CommitteeInvoker(h).InvokeFail(t, "contract is already of the latest version",
		"update", script, manifestBytes, nil)
}

func TestUpdateKeepsOfferCounter(t *testing.T) {
	env := newMarketEnv(t)
	e := env.executor

	for i := int64(1); i <= 2; i++ {
		token := []byte{byte(i)}
		env.mintItem(t, env.holder, token)
		env.createOffer(t, i, token, 10)
	}

	c := neotest.CompileFile(t, e.CommitteeHash, upgradePath, path.Join(upgradePath, "config.yml"))
	script, err := c.NEF.Bytes()
	require.NoError(t, err)
	manifestBytes, err := json.Marshal(c.Manifest)
	require.NoError(t, err)

	cInv := e.CommitteeInvoker(env.hash)
	cInv.Invoke(t, stackitem.Null{}, "update", script, manifestBytes, nil)

	// identifiers are not reissued after the migration
	cInv.Invoke(t, stackitem.Make(3), "getOffersCount")
}

func TestCreateOffer(t *testing.T) {
	env := newMarketEnv(t)
	e := env.executor

	token := []byte("item-1")
	env.mintItem(t, env.holder, token)

	holderHash := env.holder.ScriptHash()
	spenderHash := env.spender.ScriptHash()

	t.Run("negative amount", func(t *testing.T) {
		inv := e.NewInvoker(env.hash, env.holder)
		inv.InvokeFail(t, "the amount specified is below zero", "createOffer",
			holderHash, env.nftHash, token, spenderHash, int64(-1))
	})

	t.Run("missing holder witness", func(t *testing.T) {
		stranger := e.NewAccount(t)
		inv := e.NewInvoker(env.hash, stranger)
		inv.InvokeFail(t, "witness check failed", "createOffer",
			holderHash, env.nftHash, token, spenderHash, int64(100))
	})

	spenderBefore := gasBalance(e, spenderHash)

	env.createOffer(t, 1, token, 100)

	// the item is in escrow now
	env.requireItemOwner(t, token, env.hash)

	// the spender got the notification transfer
	delta := new(big.Int).Sub(gasBalance(e, spenderHash), spenderBefore)
	require.Equal(t, int64(1), delta.Int64())

	cInv := e.CommitteeInvoker(env.hash)
	cInv.Invoke(t, stackitem.Make(2), "getOffersCount")
	cInv.Invoke(t, idList(1), "getOffersSubmittedTo", spenderHash)
	cInv.Invoke(t, idList(1), "getOffersSubmittedFrom", holderHash)
	cInv.Invoke(t, stackitem.Make(1), "getNbSubmittedFor", spenderHash)
	cInv.Invoke(t, stackitem.Make(1), "getNbSubmittedFor", holderHash)
	cInv.Invoke(t, idList(), "getOffersSubmittedTo", holderHash)
	cInv.Invoke(t, idList(), "getOffersSubmittedFrom", spenderHash)

	offer := env.getOffer(t, 1)
	require.Equal(t, int64(1), offer.id)
	require.Equal(t, holderHash, offer.holder)
	require.Equal(t, spenderHash, offer.spender)
	require.Equal(t, int64(100), offer.amount)
	require.Equal(t, env.nftHash, offer.asset)
	require.Equal(t, token, offer.item)
	require.Equal(t, offerstatus.Submitted, offer.status)

	t.Run("zero amount is accepted", func(t *testing.T) {
		// the lower bound is vacuous for unsigned amounts, zero goes through
		token2 := []byte("item-2")
		env.mintItem(t, env.holder, token2)
		env.createOffer(t, 2, token2, 0)
	})

	t.Run("unknown offer lookup", func(t *testing.T) {
		cInv.InvokeFail(t, "offer not found", "getOffer", int64(42))
	})
}

func TestDeleteOffer(t *testing.T) {
	env := newMarketEnv(t)
	e := env.executor

	token := []byte("item-1")
	env.mintItem(t, env.holder, token)
	env.createOffer(t, 1, token, 50)

	t.Run("unknown offer", func(t *testing.T) {
		inv := e.NewInvoker(env.hash, env.holder)
		inv.InvokeFail(t, "offer not found", "deleteOffer", int64(99))
	})

	t.Run("not the creator", func(t *testing.T) {
		stranger := e.NewAccount(t)
		inv := e.NewInvoker(env.hash, stranger)
		inv.InvokeFail(t, "you are not the creator of this offer", "deleteOffer", int64(1))

		// the designated spender cannot revoke either
		inv = e.NewInvoker(env.hash, env.spender)
		inv.InvokeFail(t, "you are not the creator of this offer", "deleteOffer", int64(1))
	})

	hInv := e.NewInvoker(env.hash, env.holder)
	hInv.Invoke(t, stackitem.Make(1), "deleteOffer", int64(1))

	// the item is back and the offer is terminal
	env.requireItemOwner(t, token, env.holder.ScriptHash())

	offer := env.getOffer(t, 1)
	require.Equal(t, offerstatus.Deleted, offer.status)

	cInv := e.CommitteeInvoker(env.hash)
	cInv.Invoke(t, idList(), "getOffersSubmittedTo", env.spender.ScriptHash())
	cInv.Invoke(t, idList(), "getOffersSubmittedFrom", env.holder.ScriptHash())
	cInv.Invoke(t, stackitem.Make(0), "getNbSubmittedFor", env.holder.ScriptHash())

	t.Run("terminal status is final", func(t *testing.T) {
		hInv.InvokeFail(t, "offer deleted or completed", "deleteOffer", int64(1))

		sInv := e.NewInvoker(env.hash, env.spender)
		sInv.InvokeFail(t, "offer deleted or completed", "acceptOffer", int64(1), int64(50))
	})
}

func TestAcceptOffer(t *testing.T) {
	env := newMarketEnv(t)
	e := env.executor

	token := []byte("item-1")
	env.mintItem(t, env.holder, token)
	env.createOffer(t, 1, token, 100)

	t.Run("not the spender", func(t *testing.T) {
		stranger := e.NewAccount(t)
		inv := e.NewInvoker(env.hash, stranger)
		inv.InvokeFail(t, "you are not the spender designated for this offer",
			"acceptOffer", int64(1), int64(100))
	})

	sInv := e.NewInvoker(env.hash, env.spender)

	t.Run("payment mismatch", func(t *testing.T) {
		sInv.InvokeFail(t, "incorrect payment amount", "acceptOffer", int64(1), int64(99))
		sInv.InvokeFail(t, "incorrect payment amount", "acceptOffer", int64(1), int64(101))
	})

	holderBefore := gasBalance(e, env.holder.ScriptHash())
	contractBefore := gasBalance(e, env.hash)

	sInv.Invoke(t, stackitem.Make(1), "acceptOffer", int64(1), int64(100))

	// holder is paid 98% of 100, the contract keeps 2
	holderDelta := new(big.Int).Sub(gasBalance(e, env.holder.ScriptHash()), holderBefore)
	require.Equal(t, int64(98), holderDelta.Int64())
	contractDelta := new(big.Int).Sub(gasBalance(e, env.hash), contractBefore)
	require.Equal(t, int64(2), contractDelta.Int64())

	env.requireItemOwner(t, token, env.spender.ScriptHash())

	offer := env.getOffer(t, 1)
	require.Equal(t, offerstatus.Completed, offer.status)

	cInv := e.CommitteeInvoker(env.hash)
	cInv.Invoke(t, idList(), "getOffersSubmittedTo", env.spender.ScriptHash())
	cInv.Invoke(t, stackitem.Make(0), "getNbSubmittedFor", env.holder.ScriptHash())

	t.Run("terminal status is final", func(t *testing.T) {
		sInv.InvokeFail(t, "offer deleted or completed", "acceptOffer", int64(1), int64(100))

		hInv := e.NewInvoker(env.hash, env.holder)
		hInv.InvokeFail(t, "offer deleted or completed", "deleteOffer", int64(1))
	})

	t.Run("truncating fee", func(t *testing.T) {
		token2 := []byte("item-2")
		env.mintItem(t, env.holder, token2)
		env.createOffer(t, 2, token2, 99)

		holderBefore := gasBalance(e, env.holder.ScriptHash())
		contractBefore := gasBalance(e, env.hash)

		sInv.Invoke(t, stackitem.Make(2), "acceptOffer", int64(2), int64(99))

		// floor(99*98/100) = 97, the contract keeps 2, not 1.98
		holderDelta := new(big.Int).Sub(gasBalance(e, env.holder.ScriptHash()), holderBefore)
		require.Equal(t, int64(97), holderDelta.Int64())
		contractDelta := new(big.Int).Sub(gasBalance(e, env.hash), contractBefore)
		require.Equal(t, int64(2), contractDelta.Int64())
	})
}

func TestLastCompletedOffers(t *testing.T) {
	env := newMarketEnv(t)
	e := env.executor

	for i := int64(1); i <= 7; i++ {
		token := []byte{byte(i)}
		env.mintItem(t, env.holder, token)
		env.createOffer(t, i, token, 10)
	}

	sInv := e.NewInvoker(env.hash, env.spender)
	for _, id := range []int64{3, 5, 7} {
		sInv.Invoke(t, stackitem.Make(id), "acceptOffer", id, int64(10))
	}

	cInv := e.CommitteeInvoker(env.hash)
	cInv.Invoke(t, stackitem.Make(8), "getOffersCount")
	cInv.Invoke(t, idList(7, 5), "getLastCompletedOffers", int64(2))
	cInv.Invoke(t, idList(7, 5, 3), "getLastCompletedOffers", int64(10))
	cInv.Invoke(t, idList(), "getLastCompletedOffers", int64(0))

	// index entries of terminated offers are kept
	res, err := cInv.TestInvoke(t, "listOffers")
	require.NoError(t, err)

	iter, ok := res.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	items := iteratorToArray(iter)
	require.Len(t, items, 7)
	for i, itm := range items {
		offer := parseOffer(t, itm)
		require.Equal(t, int64(i+1), offer.id)
	}
}

func TestWithdrawBalance(t *testing.T) {
	e := newExecutor(t)
	owner := e.NewAccount(t)
	h := deployMiddlemanContract(t, e, owner.ScriptHash())
	fundGAS(t, e, h, 5_0000_0000)

	t.Run("not the owner", func(t *testing.T) {
		stranger := e.NewAccount(t)
		e.NewInvoker(h, stranger).InvokeFail(t, "owner witness check failed", "withdrawBalance")
	})

	ownerBefore := gasBalance(e, owner.ScriptHash())

	e.NewInvoker(h, owner).Invoke(t, stackitem.Null{}, "withdrawBalance")
	require.Equal(t, int64(0), gasBalance(e, h).Int64())
	require.Equal(t, 1, gasBalance(e, owner.ScriptHash()).Cmp(ownerBefore))

	t.Run("nothing to withdraw", func(t *testing.T) {
		e.NewInvoker(h, owner).Invoke(t, stackitem.Null{}, "withdrawBalance")
		require.Equal(t, int64(0), gasBalance(e, h).Int64())
	})
}
